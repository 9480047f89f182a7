package handler

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"go-fintrack/logger"
	"go-fintrack/model"
	"go-fintrack/web"

	"github.com/shopspring/decimal"
)

// templates maps page names to their parsed layout+page template pair.
var templates map[string]*template.Template

var pages = []string{
	"login",
	"register",
	"dashboard",
	"transaction_list",
	"transaction_form",
	"transaction_confirm_delete",
}

// InitTemplates parses the embedded templates. It must be called once at
// startup, after logger.Init.
func InitTemplates() {
	funcMap := template.FuncMap{
		"money": formatMoney,
	}

	templates = make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		tmpl, err := template.New("layout").Funcs(funcMap).ParseFS(
			web.TemplatesFS,
			"templates/layout.html",
			"templates/"+page+".html",
		)
		if err != nil {
			logger.Log.Fatalf("Failed to parse template %q: %v", page, err)
		}
		templates[page] = tmpl
	}
	logger.Log.WithField("pages", len(templates)).Info("Templates parsed")
}

// templateData is the single payload type handed to every page template.
// Pages read only the fields relevant to them.
type templateData struct {
	Title        string
	Username     string
	Flash        string
	Error        string
	Action       string
	Form         interface{}
	Errors       model.FieldErrors
	Filter       model.TransactionFilter
	Categories   []model.Category
	Transactions []*model.Transaction
	Transaction  *model.Transaction
	Summary      *model.DashboardSummary
}

// render executes a page into a buffer first so a template failure never
// leaks a half-written page to the client.
func render(w http.ResponseWriter, status int, page string, data templateData) {
	tmpl, ok := templates[page]
	if !ok {
		logger.Log.WithField("page", page).Error("Unknown template requested")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		logger.Log.WithError(err).WithField("page", page).Error("Failed to execute template")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// formatMoney renders an exact decimal as a currency string with thousands
// separators, e.g. -48499.5 -> "-₱48,499.50". Purely presentational: the
// underlying values stay exact decimals.
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart, fracPart, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := fmt.Sprintf("₱%s.%s", b.String(), fracPart)
	if neg {
		return "-" + out
	}
	return out
}
