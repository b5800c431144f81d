package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestCreateDirectoryIfNotExists(t *testing.T) {
	tempDir := t.TempDir()
	testDir := filepath.Join(tempDir, "test_dir")

	if _, err := os.Stat(testDir); !os.IsNotExist(err) {
		t.Fatalf("Test directory already exists: %s", testDir)
	}

	if err := CreateDirectoryIfNotExists(testDir); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if _, err := os.Stat(testDir); os.IsNotExist(err) {
		t.Fatalf("Directory was not created: %s", testDir)
	}

	// Second call should not fail
	if err := CreateDirectoryIfNotExists(testDir); err != nil {
		t.Fatalf("Failed to handle existing directory: %v", err)
	}
}

func TestGetHomeDownloadsDir(t *testing.T) {
	downloadsDir, err := GetHomeDownloadsDir()
	if err != nil {
		t.Fatalf("Failed to get downloads directory: %v", err)
	}
	if filepath.Base(downloadsDir) != DownloadsDirName {
		t.Errorf("Expected directory to end with %q, got: %s", DownloadsDirName, downloadsDir)
	}
}

func TestDefaultSaveDir(t *testing.T) {
	dir := DefaultSaveDir()
	if filepath.Base(dir) != AppDirName {
		t.Errorf("DefaultSaveDir() = %s, expected to end with %s", dir, AppDirName)
	}
}

func TestIsLocalPath(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "a.tsv")
	tests := []struct {
		input    string
		expected bool
	}{
		{"", false},
		{"s3://bucket/filtered_data.tsv", false},
		{"memory://filtered_data.tsv", false},
		{"relative/a.tsv", false},
		{abs, true},
	}
	for _, test := range tests {
		if got := IsLocalPath(test.input); got != test.expected {
			t.Errorf("IsLocalPath(%q) = %v, expected %v", test.input, got, test.expected)
		}
	}
}

func TestOpenFileInManager_NonExistentFile(t *testing.T) {
	err := OpenFileInManager(filepath.Join(t.TempDir(), "nonexistent.tsv"))
	if err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}
}

func TestOpenFileInManager_RemoteLocation(t *testing.T) {
	if err := OpenFileInManager("s3://bucket/key.tsv"); err == nil {
		t.Error("Expected error for a remote location, got nil")
	}
}

func TestOpenFileWithDefaultApp_RunsCommand(t *testing.T) {
	if runtime.GOOS != OSLinux && runtime.GOOS != OSDarwin && runtime.GOOS != OSWindows {
		t.Skip("unsupported operating system")
	}
	path := filepath.Join(t.TempDir(), "snapshot.tsv")
	if err := os.WriteFile(path, []byte("a\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var called []string
	original := commandRunner
	commandRunner = func(name string, args ...string) error {
		called = append([]string{name}, args...)
		return nil
	}
	defer func() { commandRunner = original }()

	if err := OpenFileWithDefaultApp(path); err != nil {
		t.Fatalf("OpenFileWithDefaultApp() error = %v", err)
	}
	if len(called) == 0 || called[len(called)-1] != path {
		t.Errorf("command = %v, expected it to end with %s", called, path)
	}
}
