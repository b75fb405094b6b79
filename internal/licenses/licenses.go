package licenses

import (
	"fmt"
	"strings"
)

// Notice identifies one third-party module shipped in the binaries.
type Notice struct {
	Module  string
	License string
}

var notices = []Notice{
	{"fyne.io/fyne/v2", "BSD-3-Clause"},
	{"github.com/PuerkitoBio/goquery", "BSD-3-Clause"},
	{"github.com/gin-gonic/gin", "MIT"},
	{"github.com/google/generative-ai-go", "Apache-2.0"},
	{"github.com/google/uuid", "BSD-3-Clause"},
	{"github.com/openai/openai-go/v3", "Apache-2.0"},
	{"github.com/rivo/uniseg", "MIT"},
	{"github.com/spf13/cobra", "Apache-2.0"},
	{"github.com/spf13/pflag", "BSD-3-Clause"},
	{"github.com/subosito/gotenv", "MIT"},
	{"github.com/zalando/go-keyring", "MIT"},
	{"golang.org/x/term", "BSD-3-Clause"},
	{"google.golang.org/api", "BSD-3-Clause"},
	{"gopkg.in/yaml.v3", "MIT AND Apache-2.0"},
}

const disclaimerText = `vaani sends your question to Tavily, the search context and question to the
selected summarization provider (Groq or Google Gemini), and the summary to
Sarvam AI. Each provider's terms and privacy policy apply. Summaries are
generated by a language model and may be inaccurate.
`

func Notices() []Notice {
	return append([]Notice(nil), notices...)
}

// NoticesText renders the third-party module list as aligned plain text.
func NoticesText() string {
	width := 0
	for _, n := range notices {
		width = max(width, len(n.Module))
	}
	var b strings.Builder
	b.WriteString("Third-party modules:\n\n")
	for _, n := range notices {
		fmt.Fprintf(&b, "  %-*s  %s\n", width, n.Module, n.License)
	}
	return b.String()
}

func DisclaimerText() string {
	return disclaimerText
}
