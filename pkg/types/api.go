package types

// Entry kinds accepted in FileEntry.Type.
const (
	EntryFile   = "file"
	EntryFolder = "folder"
)

// FileEntry describes one node of the caller's existing file tree.
type FileEntry struct {
	// Base name of the file or folder.
	// example: math203_lectures
	Name string `json:"name" example:"math203_lectures"`
	// Path of the entry inside the caller's storage. Not used for classification.
	// example: 42/math203_lectures
	Path string `json:"path" example:"42/math203_lectures"`
	// Either "file" or "folder". Only folders are offered to the model.
	// example: folder
	Type string `json:"type" example:"folder" enums:"file,folder"`
	// Size in bytes; zero for folders.
	// example: 0
	Size int64 `json:"size,omitempty" example:"0"`
}

// AnalyzeRequest is the payload of POST /analyze.
type AnalyzeRequest struct {
	// Name of the file being classified.
	// example: week3_notes.pdf
	Filename string `json:"filename" example:"week3_notes.pdf"`
	// Leading text of the file. Only the first 500 characters are sent to the model.
	// example: MATH 203 Lecture 3: Linear maps and matrices
	Content string `json:"content" example:"MATH 203 Lecture 3: Linear maps and matrices"`
	// Existing file tree of the caller.
	Files []FileEntry `json:"files"`
	// Deprecated: flat list of folder names. Use Files with type "folder" instead.
	Folders []string `json:"folders,omitempty"`
}

// AnalyzeResponse is returned by POST /analyze.
type AnalyzeResponse struct {
	// Suggested folder name, or "Uncategorized" when none could be determined.
	// example: math203_lectures
	Folder string `json:"folder" example:"math203_lectures"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}
