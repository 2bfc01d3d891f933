package http

import (
	"html/template"
	"io"
	"net/http"
	"time"

	"billscan/internal/charts"
	"billscan/internal/core"
	applog "billscan/internal/log"
)

// maxUploadBytes bounds receipt image uploads.
const maxUploadBytes = 10 << 20

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		s.logger.ErrorContext(r.Context(), "Templates not loaded", applog.FieldPath, r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	data := struct {
		Today      string
		Categories []core.Category
	}{
		Today:      time.Now().Format("2006-01-02"),
		Categories: core.Categories(),
	}
	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		s.logger.ErrorContext(r.Context(), "Index template execution failed", applog.FieldError, err.Error())
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleScan runs the scan pipeline over an uploaded receipt image:
// optional preprocessing, recognition, amount extraction. Every failure
// degrades to an informational notice; scanning never blocks record
// creation.
func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Could not read the uploaded image</div>`))
		return
	}
	file, _, err := r.FormFile("receipt")
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">No image in upload</div>`))
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Could not read the uploaded image</div>`))
		return
	}

	ctx := r.Context()
	text := ""
	if processed, err := s.preprocess.Apply(image); err != nil {
		// Treat as "no usable text" and continue the pipeline.
		s.logger.WarnContext(ctx, "Image preprocessing failed", applog.FieldError, err.Error())
	} else if recognized, err := s.recognizer.Recognize(ctx, processed); err != nil {
		s.logger.WarnContext(ctx, "Recognition failed", applog.FieldError, err.Error())
	} else {
		text = recognized
	}

	amount, ok := s.suggester.Suggest(ctx, text)
	if !ok {
		_, _ = w.Write([]byte(`<div class="warning">Could not detect amount. Please enter manually.</div>`))
		return
	}

	value := core.FormatAmount(amount)
	s.logger.InfoContext(ctx, "Amount detected", applog.FieldAmount, value)
	// Notice plus an out-of-band swap that fills the form's amount field.
	_, _ = w.Write([]byte(`<div class="success">Detected amount: ` + template.HTMLEscapeString(value) + `</div>` +
		`<input type="text" id="amount" name="amount" form="expense-form" value="` + template.HTMLEscapeString(value) + `" hx-swap-oob="true">`))
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Invalid request format</div>`))
		return
	}

	date, err := parseDate(sanitizeInput(r.Form.Get("date")))
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Invalid date</div>`))
		return
	}
	category, err := core.ParseCategory(sanitizeInput(r.Form.Get("category")))
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Unknown category</div>`))
		return
	}
	amount, err := core.ParseAmount(r.Form.Get("amount"))
	if err != nil || !amount.IsPositive() {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Invalid amount</div>`))
		return
	}

	rec := core.Record{Date: date, Category: category, Amount: amount}
	count, err := s.store.Append(r.Context(), rec)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Expense append error",
			applog.FieldError, err.Error(),
			applog.FieldCategory, string(category),
			applog.FieldAmount, core.FormatAmount(amount))
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Could not save the expense</div>`))
		return
	}

	s.logger.InfoContext(r.Context(), "Expense added",
		applog.FieldCategory, string(category),
		applog.FieldAmount, core.FormatAmount(amount),
		applog.FieldRecords, count)
	w.Header().Set("HX-Trigger", "expense:created")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">Expense added: ` +
		template.HTMLEscapeString(string(category)) +
		` — ` + template.HTMLEscapeString(core.FormatAmount(amount)) + `</div>`))
}

// handleLedger renders the expense table and totals partial.
func (s *Server) handleLedger(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	l, err := s.store.Load(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Ledger load error", applog.FieldError, err.Error())
		_, _ = w.Write([]byte(`<div class="error">Could not load the ledger</div>`))
		return
	}
	summary := core.Summarize(l)

	type row struct {
		Date     string
		Category string
		Amount   string
	}
	data := struct {
		Rows  []row
		Total string
		Count int
	}{
		Total: core.FormatAmount(summary.Total),
		Count: len(l),
	}
	for _, rec := range l {
		data.Rows = append(data.Rows, row{
			Date:     rec.Date.Format("2006-01-02"),
			Category: string(rec.Category),
			Amount:   core.FormatAmount(rec.Amount),
		})
	}

	if s.templates == nil {
		_, _ = w.Write([]byte(`<div class="placeholder">Total spent: ` + template.HTMLEscapeString(data.Total) + `</div>`))
		return
	}
	if err := s.templates.ExecuteTemplate(w, "ledger.html", data); err != nil {
		s.logger.ErrorContext(r.Context(), "Ledger template execution failed", applog.FieldError, err.Error())
		_, _ = w.Write([]byte(`<div class="error">Could not render the ledger</div>`))
	}
}

func (s *Server) handleCategoryBar(w http.ResponseWriter, r *http.Request) {
	s.serveChart(w, r, func(sum core.Summary) ([]byte, error) {
		return charts.CategoryBar(sum, 480, 320)
	})
}

func (s *Server) handleCategoryPie(w http.ResponseWriter, r *http.Request) {
	s.serveChart(w, r, func(sum core.Summary) ([]byte, error) {
		return charts.CategoryPie(sum, 320, 320)
	})
}

func (s *Server) serveChart(w http.ResponseWriter, r *http.Request, render func(core.Summary) ([]byte, error)) {
	l, err := s.store.Load(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Ledger load error", applog.FieldError, err.Error())
		http.Error(w, "could not load the ledger", http.StatusInternalServerError)
		return
	}

	png, err := render(core.Summarize(l))
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Chart render error", applog.FieldError, err.Error())
		http.Error(w, "could not render chart", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(png)
}
