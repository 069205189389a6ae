package classifier

import (
	"strconv"
	"strings"

	"folderd/pkg/types"
)

// ContentLimit is the number of leading characters of file content placed in
// the prompt.
const ContentLimit = 500

// FolderNames returns the names of folder entries, in input order.
func FolderNames(files []types.FileEntry) []string {
	names := make([]string, 0, len(files))
	for _, f := range files {
		if f.Type == types.EntryFolder {
			names = append(names, f.Name)
		}
	}
	return names
}

// KnownFolders returns the folder names a request offers to the model:
// folder entries of Files followed by the deprecated flat Folders list.
func KnownFolders(req types.AnalyzeRequest) []string {
	return append(FolderNames(req.Files), req.Folders...)
}

// Truncate returns the first n characters of s, counted in runes.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// BuildPrompt renders the instruction sent to the model. The output depends
// only on its arguments.
func BuildPrompt(filename, content string, folders []string) string {
	var b strings.Builder
	b.WriteString("You are an AI file organizer designed to categorize files into folders efficiently.\n")
	b.WriteString("Existing folders: ")
	b.WriteString(formatList(folders))
	b.WriteString("\n\n")
	b.WriteString("Your task is to determine the **best single folder** for this file:\n\n")
	b.WriteString("1. Prefer an existing folder if it fits the file content.\n")
	b.WriteString("2. If no existing folder fits, create a new folder name that is short, lowercase, ")
	b.WriteString("and uses only letters, numbers, and underscores (format: coursecode_type, e.g., 'math203_lectures').\n")
	b.WriteString("3. Only output the folder name. No explanation, no punctuation, no extra text.\n\n")
	b.WriteString("File Name: ")
	b.WriteString(filename)
	b.WriteString("\n")
	b.WriteString("File Content (first ")
	b.WriteString(strconv.Itoa(ContentLimit))
	b.WriteString(" chars): ")
	b.WriteString(Truncate(content, ContentLimit))
	b.WriteString("\n")
	return b.String()
}

func formatList(items []string) string {
	quoted := make([]string, len(items))
	for i, it := range items {
		quoted[i] = strconv.Quote(it)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
