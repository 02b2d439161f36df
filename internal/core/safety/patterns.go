package safety

// Category names the rule family that flagged a piece of text.
type Category string

const (
	CategoryNone      Category = ""
	CategorySQL       Category = "sql"
	CategoryInjection Category = "prompt_injection"
	CategorySystem    Category = "system"
	CategoryLength    Category = "length"
	CategoryEncoding  Category = "encoding"
	CategoryLeak      Category = "leak"
	CategoryQueryText Category = "query_text"
)

// MaxQueryLength is the longest query accepted, in characters.
const MaxQueryLength = 500

// All lists are matched as lower-case substrings. Trailing spaces are
// significant: "select " must not flag "selected".

var sqlPatterns = []string{
	"select ", "insert ", "update ", "delete ", "drop ", "create ", "alter ",
	"union ", "exec ", "execute ", "script ", "--", ";", "/*", "*/",
	"information_schema", "sys.", "master.", "msdb.",
}

var injectionPatterns = []string{
	"ignore previous", "ignore all", "system prompt", "you are now",
	"new instructions", "override", "jailbreak", "role play",
	"pretend", "act as", "simulate", "base64", "encode", "decode",
	"api key", "secret", "password", "token", "credential",
	"tell me your", "what is your", "reveal your", "show me your",
	"forget everything", "disregard", "step 1:", "step one:",
}

var systemPatterns = []string{
	"console.log", "eval(", "function(", "javascript:", "script>", "<script",
	"<iframe", "<img", "onerror=", "onclick=", "onload=",
	"prompt(", "alert(", "confirm(", "document.",
	"window.", "process.env", "require(", "import ",
}

var leakPatterns = []string{
	"api key", "secret", "password", "token", "credential",
	"system prompt", "instruction", "gemini", "openai",
	"database schema", "table structure", "sql query",
	"step 1:", "step one:", "step 2:", "step two:",
}

type patternSet struct {
	category Category
	patterns []string
}

var inputRules = []patternSet{
	{CategorySQL, sqlPatterns},
	{CategoryInjection, injectionPatterns},
	{CategorySystem, systemPatterns},
}
