package kernel

type ProfileID string

func NewProfileID(id string) ProfileID { return ProfileID(id) }
func (p ProfileID) String() string     { return string(p) }
func (p ProfileID) IsEmpty() bool      { return string(p) == "" }

type JobID string

func NewJobID(id string) JobID { return JobID(id) }
func (j JobID) String() string { return string(j) }
func (j JobID) IsEmpty() bool  { return string(j) == "" }

type DraftID string

func NewDraftID(id string) DraftID { return DraftID(id) }
func (d DraftID) String() string   { return string(d) }
func (d DraftID) IsEmpty() bool    { return string(d) == "" }

type AssessmentID string

func NewAssessmentID(id string) AssessmentID { return AssessmentID(id) }
func (a AssessmentID) String() string        { return string(a) }
func (a AssessmentID) IsEmpty() bool         { return string(a) == "" }

type LogEntryID string

func NewLogEntryID(id string) LogEntryID { return LogEntryID(id) }
func (l LogEntryID) String() string      { return string(l) }
func (l LogEntryID) IsEmpty() bool       { return string(l) == "" }

type RunID string

func NewRunID(id string) RunID { return RunID(id) }
func (r RunID) String() string { return string(r) }
func (r RunID) IsEmpty() bool  { return string(r) == "" }
