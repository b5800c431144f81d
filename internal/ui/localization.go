package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle        = "app_title"
	KeySettings        = "settings"
	KeyFile            = "file"
	KeyLanguage        = "language"
	KeySave            = "save"
	KeyCancel          = "cancel"
	KeyBrowse          = "browse"
	KeySettingsSaved   = "settings_saved"
	KeyRestartRequired = "restart_required"

	KeyFilters        = "filters"
	KeySummary        = "summary"
	KeyCharts         = "charts"
	KeyResetFilters   = "reset_filters"
	KeySaveFiltered   = "save_filtered"
	KeySaving         = "saving"
	KeyOpenFolder     = "open_folder"
	KeyOpenFile       = "open_file"
	KeyDataReloaded   = "data_reloaded"
	KeyErrorLoading   = "error_loading"
	KeyInvalidNumber  = "invalid_number"
	KeyKeywordHint    = "keyword_hint"
	KeyFrom           = "from"
	KeyTo             = "to"
	KeyIncludeNull    = "include_null"
	KeyIncludeAbove   = "include_above"
	KeyModeAll        = "mode_all"
	KeyModeExclude    = "mode_exclude"
	KeyModeOnly       = "mode_only"
	KeyCountry        = "country"
	KeyAssemblyLevel  = "assembly_level"
	KeyAnnotation     = "annotation"
	KeySubmissionYear = "submission_year"
	KeyAtypical       = "atypical"
	KeySuppressed     = "suppressed"
	KeyTechnology     = "technology"
	KeyCoverage       = "coverage"
	KeyANIIdentity    = "ani_identity"
	KeyANICoverage    = "ani_coverage"
	KeyContigN50      = "contig_n50"
	KeyContigL50      = "contig_l50"
	KeyTotalGenes     = "total_genes"
	KeyProteinCoding  = "protein_coding"
	KeyNonCoding      = "non_coding"
	KeyPseudogenes    = "pseudogenes"
	KeyBioproject     = "bioproject"
	KeyBiosample      = "biosample"
	KeyHost           = "host"
	KeyCategory       = "category"
	KeySource         = "source"
	KeySample         = "sample"

	KeyDataFile      = "data_file"
	KeyGeometryDir   = "geometry_dir"
	KeySaveDirectory = "save_directory"
	KeyLogLevel      = "log_level"
	KeyLogFile       = "log_file"
	KeyExportDriver  = "export_driver"
	KeyS3Bucket      = "s3_bucket"
	KeyS3Region      = "s3_region"
	KeyS3Endpoint    = "s3_endpoint"
	KeyChartWidth    = "chart_width"
	KeyChartHeight   = "chart_height"
	KeyDataSettings  = "data_settings"
	KeyExportSection = "export_settings"
	KeyUISection     = "interface_settings"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:        "MetaMiner",
		KeySettings:        "Settings",
		KeyFile:            "File",
		KeyLanguage:        "Language",
		KeySave:            "Save",
		KeyCancel:          "Cancel",
		KeyBrowse:          "Browse",
		KeySettingsSaved:   "Settings saved successfully!",
		KeyRestartRequired: "Restart the application to apply the snapshot store and logging settings.",

		KeyFilters:        "Filters",
		KeySummary:        "Summary",
		KeyCharts:         "Charts",
		KeyResetFilters:   "Reset filters",
		KeySaveFiltered:   "Save filtered data",
		KeySaving:         "Saving filtered data...",
		KeyOpenFolder:     "Show in folder",
		KeyOpenFile:       "Open file",
		KeyDataReloaded:   "Metadata reloaded",
		KeyErrorLoading:   "Error loading metadata",
		KeyInvalidNumber:  "Enter a number",
		KeyKeywordHint:    "Keywords separated by commas",
		KeyFrom:           "from",
		KeyTo:             "to",
		KeyIncludeNull:    "Include genomes with no data",
		KeyIncludeAbove:   "Include genomes above the maximum",
		KeyModeAll:        "All",
		KeyModeExclude:    "Exclude",
		KeyModeOnly:       "Only",
		KeyCountry:        "Country",
		KeyAssemblyLevel:  "Assembly level",
		KeyAnnotation:     "Annotation",
		KeySubmissionYear: "Submission year",
		KeyAtypical:       "Atypical genomes",
		KeySuppressed:     "Suppressed genomes",
		KeyTechnology:     "Sequencing technology",
		KeyCoverage:       "Genome coverage",
		KeyANIIdentity:    "ANI identity (%)",
		KeyANICoverage:    "ANI coverage (%)",
		KeyContigN50:      "Contig N50",
		KeyContigL50:      "Contig L50",
		KeyTotalGenes:     "Total genes",
		KeyProteinCoding:  "Protein coding genes",
		KeyNonCoding:      "Non-coding genes",
		KeyPseudogenes:    "Pseudogenes",
		KeyBioproject:     "Bioproject",
		KeyBiosample:      "Biosample",
		KeyHost:           "Host",
		KeyCategory:       "Isolation category",
		KeySource:         "Isolation source",
		KeySample:         "Sample type",

		KeyDataFile:      "Metadata file",
		KeyGeometryDir:   "GeoJSON directory",
		KeySaveDirectory: "Save directory",
		KeyLogLevel:      "Log level",
		KeyLogFile:       "Log file",
		KeyExportDriver:  "Snapshot store",
		KeyS3Bucket:      "S3 bucket",
		KeyS3Region:      "S3 region",
		KeyS3Endpoint:    "S3 endpoint",
		KeyChartWidth:    "Chart width",
		KeyChartHeight:   "Chart height",
		KeyDataSettings:  "Data",
		KeyExportSection: "Snapshots",
		KeyUISection:     "Interface",
	}

	l.texts["ru"] = map[string]string{
		KeyAppTitle:        "MetaMiner",
		KeySettings:        "Настройки",
		KeyFile:            "Файл",
		KeyLanguage:        "Язык",
		KeySave:            "Сохранить",
		KeyCancel:          "Отмена",
		KeyBrowse:          "Обзор",
		KeySettingsSaved:   "Настройки успешно сохранены!",
		KeyRestartRequired: "Перезапустите приложение, чтобы применить настройки хранилища и журналирования.",

		KeyFilters:        "Фильтры",
		KeySummary:        "Сводка",
		KeyCharts:         "Графики",
		KeyResetFilters:   "Сбросить фильтры",
		KeySaveFiltered:   "Сохранить отфильтрованные данные",
		KeySaving:         "Сохранение отфильтрованных данных...",
		KeyOpenFolder:     "Показать в папке",
		KeyOpenFile:       "Открыть файл",
		KeyDataReloaded:   "Метаданные перезагружены",
		KeyErrorLoading:   "Ошибка загрузки метаданных",
		KeyInvalidNumber:  "Введите число",
		KeyKeywordHint:    "Ключевые слова через запятую",
		KeyFrom:           "от",
		KeyTo:             "до",
		KeyIncludeNull:    "Включать геномы без данных",
		KeyIncludeAbove:   "Включать геномы выше максимума",
		KeyModeAll:        "Все",
		KeyModeExclude:    "Исключить",
		KeyModeOnly:       "Только",
		KeyCountry:        "Страна",
		KeyAssemblyLevel:  "Уровень сборки",
		KeyAnnotation:     "Аннотация",
		KeySubmissionYear: "Год публикации",
		KeyAtypical:       "Нетипичные геномы",
		KeySuppressed:     "Отозванные геномы",
		KeyTechnology:     "Технология секвенирования",
		KeyCoverage:       "Покрытие генома",
		KeyANIIdentity:    "Идентичность ANI (%)",
		KeyANICoverage:    "Покрытие ANI (%)",
		KeyContigN50:      "Contig N50",
		KeyContigL50:      "Contig L50",
		KeyTotalGenes:     "Всего генов",
		KeyProteinCoding:  "Белок-кодирующие гены",
		KeyNonCoding:      "Некодирующие гены",
		KeyPseudogenes:    "Псевдогены",
		KeyBioproject:     "Биопроект",
		KeyBiosample:      "Биообразец",
		KeyHost:           "Хозяин",
		KeyCategory:       "Категория источника",
		KeySource:         "Источник выделения",
		KeySample:         "Тип образца",

		KeyDataFile:      "Файл метаданных",
		KeyGeometryDir:   "Каталог GeoJSON",
		KeySaveDirectory: "Каталог сохранения",
		KeyLogLevel:      "Уровень журнала",
		KeyLogFile:       "Файл журнала",
		KeyExportDriver:  "Хранилище снимков",
		KeyS3Bucket:      "Бакет S3",
		KeyS3Region:      "Регион S3",
		KeyS3Endpoint:    "Адрес S3",
		KeyChartWidth:    "Ширина графика",
		KeyChartHeight:   "Высота графика",
		KeyDataSettings:  "Данные",
		KeyExportSection: "Снимки",
		KeyUISection:     "Интерфейс",
	}

	l.texts["pt"] = map[string]string{
		KeyAppTitle:        "MetaMiner",
		KeySettings:        "Configurações",
		KeyFile:            "Arquivo",
		KeyLanguage:        "Idioma",
		KeySave:            "Salvar",
		KeyCancel:          "Cancelar",
		KeyBrowse:          "Navegar",
		KeySettingsSaved:   "Configurações salvas com sucesso!",
		KeyRestartRequired: "Reinicie o aplicativo para aplicar as configurações de armazenamento e de log.",

		KeyFilters:        "Filtros",
		KeySummary:        "Resumo",
		KeyCharts:         "Gráficos",
		KeyResetFilters:   "Redefinir filtros",
		KeySaveFiltered:   "Salvar dados filtrados",
		KeySaving:         "Salvando dados filtrados...",
		KeyOpenFolder:     "Mostrar na pasta",
		KeyOpenFile:       "Abrir arquivo",
		KeyDataReloaded:   "Metadados recarregados",
		KeyErrorLoading:   "Erro ao carregar metadados",
		KeyInvalidNumber:  "Digite um número",
		KeyKeywordHint:    "Palavras-chave separadas por vírgulas",
		KeyFrom:           "de",
		KeyTo:             "até",
		KeyIncludeNull:    "Incluir genomas sem dados",
		KeyIncludeAbove:   "Incluir genomas acima do máximo",
		KeyModeAll:        "Todos",
		KeyModeExclude:    "Excluir",
		KeyModeOnly:       "Somente",
		KeyCountry:        "País",
		KeyAssemblyLevel:  "Nível de montagem",
		KeyAnnotation:     "Anotação",
		KeySubmissionYear: "Ano de submissão",
		KeyAtypical:       "Genomas atípicos",
		KeySuppressed:     "Genomas suprimidos",
		KeyTechnology:     "Tecnologia de sequenciamento",
		KeyCoverage:       "Cobertura do genoma",
		KeyANIIdentity:    "Identidade ANI (%)",
		KeyANICoverage:    "Cobertura ANI (%)",
		KeyContigN50:      "Contig N50",
		KeyContigL50:      "Contig L50",
		KeyTotalGenes:     "Total de genes",
		KeyProteinCoding:  "Genes codificadores de proteína",
		KeyNonCoding:      "Genes não codificantes",
		KeyPseudogenes:    "Pseudogenes",
		KeyBioproject:     "Bioprojeto",
		KeyBiosample:      "Bioamostra",
		KeyHost:           "Hospedeiro",
		KeyCategory:       "Categoria de isolamento",
		KeySource:         "Fonte de isolamento",
		KeySample:         "Tipo de amostra",

		KeyDataFile:      "Arquivo de metadados",
		KeyGeometryDir:   "Diretório GeoJSON",
		KeySaveDirectory: "Diretório de gravação",
		KeyLogLevel:      "Nível de log",
		KeyLogFile:       "Arquivo de log",
		KeyExportDriver:  "Armazenamento de snapshots",
		KeyS3Bucket:      "Bucket S3",
		KeyS3Region:      "Região S3",
		KeyS3Endpoint:    "Endpoint S3",
		KeyChartWidth:    "Largura do gráfico",
		KeyChartHeight:   "Altura do gráfico",
		KeyDataSettings:  "Dados",
		KeyExportSection: "Snapshots",
		KeyUISection:     "Interface",
	}
}
