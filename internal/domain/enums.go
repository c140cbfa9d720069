package domain

// FileType represents the source formats accepted for analysis.
type FileType string

const (
	FileTypePDF  FileType = "pdf"
	FileTypeText FileType = "txt"
)

// AllowedContentTypes maps MIME content types to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
	"text/plain":      FileTypeText,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf": FileTypePDF,
	"txt": FileTypeText,
}

// AnalysisStatus tracks the lifecycle of a persisted analysis.
type AnalysisStatus string

const (
	AnalysisStatusQueued     AnalysisStatus = "queued"
	AnalysisStatusProcessing AnalysisStatus = "processing"
	AnalysisStatusCompleted  AnalysisStatus = "completed"
	AnalysisStatusFailed     AnalysisStatus = "failed"
)

// Jurisdiction is the case-category label assigned to a judgment.
type Jurisdiction string

const (
	JurisdictionWrit             Jurisdiction = "Writ Jurisdiction"
	JurisdictionAppellate        Jurisdiction = "Appellate Jurisdiction"
	JurisdictionOriginal         Jurisdiction = "Original Jurisdiction"
	JurisdictionBail             Jurisdiction = "Bail Jurisdiction"
	JurisdictionRevisional       Jurisdiction = "Revisional Jurisdiction"
	JurisdictionCriminalOriginal Jurisdiction = "Criminal Original Jurisdiction"
	JurisdictionContempt         Jurisdiction = "Contempt Jurisdiction"
	JurisdictionExecution        Jurisdiction = "Execution Jurisdiction"
	JurisdictionGeneral          Jurisdiction = "General Jurisdiction"
)

// Sentinels returned in place of fields that could not be detected.
const (
	CourtNotDetected      = "COURT NOT DETECTED"
	CaseNumberNotFound    = "N/A"
	PartiesNotDetected    = "Parties Not Detected"
	PartyDetailsNotFound  = "Party Details Not Found"
	PartySeparator        = "\n-vs-\n"
	OthersSuffix          = " & Ors"
	TraceRefFormat        = "[Ref ID: %d] %s"
	MaxTracesPerCategory  = 5
	MinTraceSentenceRunes = 30
	MaxTraceSentenceRunes = 500
)

// Section names a summarized window of the judgment.
type Section string

const (
	SectionExecSummary  Section = "exec_summary"
	SectionBackground   Section = "background"
	SectionIssues       Section = "issues"
	SectionObservations Section = "observations"
	SectionDecision     Section = "decision"
)

// Degraded-output sentinels used when summarization fails.
const (
	ExecSummaryUnavailable  = "Summarization processing encountered an error."
	BackgroundUnavailable   = "Unable to generate background summary."
	IssuesUnavailable       = "Unable to extract issues."
	ObservationsUnavailable = "Unable to extract observations."
	DecisionUnavailable     = "Unable to extract decision."
)

// TraceCategory names a group of verbatim citations in the source log.
type TraceCategory string

const (
	TraceBackground  TraceCategory = "Case Background Trace"
	TraceObservation TraceCategory = "Court Observation Trace"
	TraceDecision    TraceCategory = "Final Decision Trace"
)
