package model

// Field is the name of a column in the record table
type Field string

// Record table columns
const (
	FieldCountry        Field = "country_common_name"
	FieldCountryCode    Field = "country_three_lettered_name"
	FieldStateName      Field = "state_name"
	FieldStateCode      Field = "state_code"
	FieldAssemblyLevel  Field = "Assembly_level"
	FieldAnnotation     Field = "Annotation_category"
	FieldSubmissionYear Field = "Submission_year"
	FieldAtypical       Field = "Assmbly_atypical?"
	FieldAssemblyStatus Field = "Assembly_status"
	FieldSequencingTech Field = "Categorized_sequencing_technologies"
	FieldCoverageDepth  Field = "Coverage_Depth"
	FieldANIIdentity    Field = "ANI_best_match_score"
	FieldANICoverage    Field = "ANI_best_matched_assembly's_coverage"
	FieldContigN50      Field = "Contig_N50"
	FieldContigL50      Field = "Contig_L50"
	FieldTotalGenes     Field = "Total_genes"
	FieldProteinCoding  Field = "Protein-coding_genes"
	FieldNonCoding      Field = "Non-coding_genes"
	FieldPseudogenes    Field = "Pseudogenes"
	FieldBioproject     Field = "Bioproject_title"
	FieldBiosample      Field = "Biosample_title"
	FieldHost           Field = "identified_host"
	FieldSourceCategory Field = "source_category"
	FieldSource         Field = "source"
	FieldSample         Field = "sample"
)

// NumericFields lists the columns parsed as numbers when a table is built.
var NumericFields = []Field{
	FieldSubmissionYear,
	FieldCoverageDepth,
	FieldANIIdentity,
	FieldANICoverage,
	FieldContigN50,
	FieldContigL50,
	FieldTotalGenes,
	FieldProteinCoding,
	FieldNonCoding,
	FieldPseudogenes,
}

// RequiredFields must be present in every loaded dataset.
var RequiredFields = []Field{
	FieldCountry,
	FieldAssemblyLevel,
	FieldAnnotation,
	FieldSubmissionYear,
	FieldHost,
}

// columnAliases maps legacy column names produced by older pipelines.
var columnAliases = map[string]Field{
	"source_y": FieldSource,
}

// CanonicalColumn returns the field name a raw column header refers to.
func CanonicalColumn(name string) string {
	if f, ok := columnAliases[name]; ok {
		return string(f)
	}
	return name
}

// IsNumeric reports whether the field holds numbers.
func IsNumeric(f Field) bool {
	for _, n := range NumericFields {
		if n == f {
			return true
		}
	}
	return false
}

// Known category values
const (
	AssemblyComplete   = "Complete Genome"
	AssemblyChromosome = "Chromosome"
	AssemblyScaffold   = "Scaffold"
	AssemblyContig     = "Contig"

	AnnotationGenBank = "GenBank"
	AnnotationRefSeq  = "NCBI RefSeq"
	AnnotationOthers  = "Others"
	AnnotationNone    = "No Annotation"

	AtypicalYes = "Yes"
	AtypicalNo  = "No"

	StatusCurrent    = "current"
	StatusSuppressed = "suppressed"

	HostUnknown = "Unknown"
)

// AssemblyLevels in display order.
var AssemblyLevels = []string{AssemblyComplete, AssemblyChromosome, AssemblyScaffold, AssemblyContig}

// AnnotationCategories in display order.
var AnnotationCategories = []string{AnnotationGenBank, AnnotationRefSeq, AnnotationOthers, AnnotationNone}

// KnownHosts are the host groups produced by the categorization pipeline.
var KnownHosts = []string{
	"Hospital-associated",
	"Animal-associated",
	"Environment-associated",
	"Laboratory-based",
	HostUnknown,
}

// AllFields lists every known column in the order the pipeline writes them.
var AllFields = []Field{
	FieldCountry,
	FieldCountryCode,
	FieldStateName,
	FieldStateCode,
	FieldAssemblyLevel,
	FieldAnnotation,
	FieldSubmissionYear,
	FieldAtypical,
	FieldAssemblyStatus,
	FieldSequencingTech,
	FieldCoverageDepth,
	FieldANIIdentity,
	FieldANICoverage,
	FieldContigN50,
	FieldContigL50,
	FieldTotalGenes,
	FieldProteinCoding,
	FieldNonCoding,
	FieldPseudogenes,
	FieldBioproject,
	FieldBiosample,
	FieldHost,
	FieldSourceCategory,
	FieldSource,
	FieldSample,
}

// FieldNames converts fields into header names.
func FieldNames(fields []Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = string(f)
	}
	return out
}
