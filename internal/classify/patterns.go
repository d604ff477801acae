package classify

import "regexp"

// Signature is a named markup or code pattern.
type Signature struct {
	Name  string
	Regex *regexp.Regexp
}

// promotionalKeywords are matched as lowercase substrings.
var promotionalKeywords = []string{
	"referral code",
	"cashback",
	"join india",
	"click my link",
	"get assured",
	"download app",
	"earn up to",
	"https://",
	"http://",
	"www.",
	"paytm",
	"gpay",
	"phonepe",
}

// technicalSignatures are case-insensitive and multi-line so that the comment
// rules match any line of a multi-line body.
var technicalSignatures = []Signature{
	{Name: "latex_documentclass", Regex: regexp.MustCompile(`(?im)\\documentclass`)},
	{Name: "latex_usepackage", Regex: regexp.MustCompile(`(?im)\\usepackage`)},
	{Name: "latex_begin", Regex: regexp.MustCompile(`(?im)\\begin\{`)},
	{Name: "latex_end", Regex: regexp.MustCompile(`(?im)\\end\{`)},
	{Name: "latex_textbf", Regex: regexp.MustCompile(`(?im)\\textbf\{`)},
	{Name: "latex_section", Regex: regexp.MustCompile(`(?im)\\section\{`)},
	{Name: "latex_title", Regex: regexp.MustCompile(`(?im)\\title\{`)},
	{Name: "function_def", Regex: regexp.MustCompile(`(?im)def\s+\w+\(`)},
	{Name: "import", Regex: regexp.MustCompile(`(?im)import\s+\w+`)},
	{Name: "from_import", Regex: regexp.MustCompile(`(?im)from\s+\w+\s+import`)},
	{Name: "html_tag", Regex: regexp.MustCompile(`(?im)<[^>]+>`)},
	{Name: "hash_comment", Regex: regexp.MustCompile(`(?im)^\s*#.*$`)},
	{Name: "slash_comment", Regex: regexp.MustCompile(`(?im)^\s*//.*$`)},
}
