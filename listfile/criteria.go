package listfile

// FileListKind selects one of the file-list blocks the tool maintains.
type FileListKind int

const (
	IncludeFiles FileListKind = iota
	SourceFiles
)

// Statement names and list markers written and recognized by the tool.
const (
	SetName          = "set"
	ProjectName      = "project"
	ExecutableName   = "add_executable"
	LibraryName      = "add_library"
	IncludeFilesName = "INCLUDE_FILES"
	SourceFilesName  = "SRC_FILES"
)

// Marker returns the first argument of the set() statement for the kind.
func (k FileListKind) Marker() string {
	if k == SourceFiles {
		return SourceFilesName
	}
	return IncludeFilesName
}

// Reference returns the variable expansion of the list, e.g. ${SRC_FILES}.
func (k FileListKind) Reference() string {
	return "${" + k.Marker() + "}"
}

func (k FileListKind) String() string {
	if k == SourceFiles {
		return "source files"
	}
	return "include files"
}

// IsFileListMarker reports whether text names one of the file-list blocks.
func IsFileListMarker(text string) bool {
	return text == IncludeFilesName || text == SourceFilesName
}

type criteriaKind int

const (
	fileListCriteria criteriaKind = iota
	projectCriteria
	outputCriteria
)

// Criteria locates a statement by its role in the list-file.
type Criteria struct {
	kind     criteriaKind
	fileList FileListKind
	project  string
}

// SetFileList matches set(INCLUDE_FILES ...) or set(SRC_FILES ...).
func SetFileList(kind FileListKind) Criteria {
	return Criteria{kind: fileListCriteria, fileList: kind}
}

// Project matches the project() statement.
func Project() Criteria {
	return Criteria{kind: projectCriteria}
}

// Output matches add_executable(name ...) or add_library(name ...).
func Output(projectName string) Criteria {
	return Criteria{kind: outputCriteria, project: projectName}
}

// Matches reports whether the statement satisfies the criteria.
func (c Criteria) Matches(s *Statement) bool {
	if s == nil {
		return false
	}
	switch c.kind {
	case fileListCriteria:
		if s.Name != SetName || len(s.Arguments) == 0 {
			return false
		}
		return s.Arguments[0].Text == c.fileList.Marker()
	case projectCriteria:
		return s.Name == ProjectName
	case outputCriteria:
		if s.Name != ExecutableName && s.Name != LibraryName {
			return false
		}
		if len(s.Arguments) == 0 {
			return false
		}
		return s.Arguments[0].Text == c.project
	}
	return false
}

func (c Criteria) String() string {
	switch c.kind {
	case fileListCriteria:
		return SetName + "(" + c.fileList.Marker() + ")"
	case projectCriteria:
		return ProjectName + "()"
	case outputCriteria:
		return ExecutableName + "|" + LibraryName + "(" + c.project + ")"
	}
	return "unknown"
}
