package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/wkaram/expense_tracker_app/internal/apperrors"
	"github.com/wkaram/expense_tracker_app/internal/core/domain"
	portssvc "github.com/wkaram/expense_tracker_app/internal/core/ports/services"
	"github.com/wkaram/expense_tracker_app/internal/dto"
)

// portabilityService implements the PortabilitySvcFacade interface.
type portabilityService struct {
	BaseService
	store    *Store
	validate *validator.Validate
	now      func() time.Time
}

// NewPortabilityService creates the import/export pipeline.
func NewPortabilityService(store *Store) portssvc.PortabilitySvcFacade {
	return &portabilityService{
		store:    store,
		validate: validator.New(),
		now:      time.Now,
	}
}

// Ensure portabilityService implements the PortabilitySvcFacade interface
var _ portssvc.PortabilitySvcFacade = (*portabilityService)(nil)

func ptr[T any](v T) *T { return &v }

// ExportData renders the current state in the portable document format.
// Expense category and account references are denormalized to names so the
// file stays readable outside the application.
func (s *portabilityService) ExportData(ctx context.Context) (*dto.PortableAppData, error) {
	data := s.store.Snapshot()

	categoryNames := make(map[string]string, len(data.Categories))
	for _, c := range data.Categories {
		categoryNames[c.CategoryID] = c.Name
	}
	accountNames := make(map[string]string, len(data.Accounts))
	for _, a := range data.Accounts {
		accountNames[a.AccountID] = a.Name
	}

	out := &dto.PortableAppData{
		Expenses:        make([]dto.PortableExpense, 0, len(data.Expenses)),
		Accounts:        make([]dto.PortableAccount, 0, len(data.Accounts)),
		Categories:      make([]dto.PortableCategory, 0, len(data.Categories)),
		MonthlyExpenses: make([]dto.PortableMonthlyExpense, 0, len(data.MonthlyExpenses)),
		Incomes:         make([]dto.PortableIncome, 0, len(data.Incomes)),
	}

	for _, e := range data.Expenses {
		portable := dto.PortableExpense{
			ID:       ptr(e.ExpenseID),
			Date:     ptr(e.Date),
			Title:    ptr(e.Title),
			Price:    ptr(e.Price),
			Currency: ptr(e.Currency),
			Category: ptr(categoryNames[e.CategoryID]),
		}
		if e.IsMonthlyPayment {
			portable.IsMonthlyPayment = ptr(true)
		}
		if name, ok := accountNames[e.AccountID]; ok {
			portable.Account = ptr(name)
		}
		out.Expenses = append(out.Expenses, portable)
	}
	for _, a := range data.Accounts {
		out.Accounts = append(out.Accounts, dto.PortableAccount{
			ID:                  ptr(a.AccountID),
			Name:                ptr(a.Name),
			Balances:            a.Balances,
			SupportedCurrencies: a.SupportedCurrencies,
		})
	}
	for _, c := range data.Categories {
		out.Categories = append(out.Categories, dto.PortableCategory{
			ID:              ptr(c.CategoryID),
			Name:            ptr(c.Name),
			AllowedPerMonth: c.AllowedPerMonth,
		})
	}
	for _, m := range data.MonthlyExpenses {
		out.MonthlyExpenses = append(out.MonthlyExpenses, dto.PortableMonthlyExpense{
			ID:         ptr(m.MonthlyExpenseID),
			Title:      ptr(m.Title),
			Price:      ptr(m.Price),
			Currency:   ptr(m.Currency),
			CategoryID: ptr(m.CategoryID),
		})
	}
	for _, i := range data.Incomes {
		portable := dto.PortableIncome{
			ID:       ptr(i.IncomeID),
			Amount:   ptr(i.Amount),
			Currency: ptr(i.Currency),
			Date:     ptr(i.Date),
		}
		if i.Title != "" {
			portable.Title = ptr(i.Title)
		}
		if i.AccountID != "" {
			portable.AccountID = ptr(i.AccountID)
		}
		out.Incomes = append(out.Incomes, portable)
	}
	return out, nil
}

// ExportLegacy renders every expense as a flat record in the requested
// format. The CSV output intentionally joins raw fields with commas and no
// quoting, matching the historical export files byte for byte.
func (s *portabilityService) ExportLegacy(ctx context.Context, format portssvc.LegacyExportFormat) ([]byte, string, error) {
	data := s.store.Snapshot()

	categoryNames := make(map[string]string, len(data.Categories))
	for _, c := range data.Categories {
		categoryNames[c.CategoryID] = c.Name
	}

	records := make([]dto.LegacyRecord, 0, len(data.Expenses))
	for _, e := range data.Expenses {
		records = append(records, dto.LegacyRecord{
			ID:       e.ExpenseID,
			Date:     e.Date,
			Title:    e.Title,
			Price:    e.Price.String(),
			Currency: string(e.Currency),
			Category: categoryNames[e.CategoryID],
		})
	}

	filename := fmt.Sprintf("expenses_%s.%s", s.now().Format("2006-01-02"), format)
	switch format {
	case portssvc.LegacyFormatJSON:
		content, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return nil, "", fmt.Errorf("failed to render JSON export: %w", err)
		}
		return content, filename, nil

	case portssvc.LegacyFormatCSV:
		var b strings.Builder
		b.WriteString("id,date,title,price,currency,category\n")
		for _, r := range records {
			b.WriteString(strings.Join([]string{r.ID, r.Date, r.Title, r.Price, r.Currency, r.Category}, ","))
			b.WriteByte('\n')
		}
		return []byte(b.String()), filename, nil

	case portssvc.LegacyFormatXLSX:
		content, err := renderLegacyXLSX(records)
		if err != nil {
			return nil, "", err
		}
		return content, filename, nil

	default:
		return nil, "", fmt.Errorf("unknown export format %q: %w", format, apperrors.ErrValidation)
	}
}

func renderLegacyXLSX(records []dto.LegacyRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Expenses"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to prepare XLSX sheet: %w", err)
	}
	if err := f.SetSheetRow(sheet, "A1", &[]any{"id", "date", "title", "price", "currency", "category"}); err != nil {
		return nil, fmt.Errorf("failed to write XLSX header: %w", err)
	}
	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to address XLSX row: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &[]any{r.ID, r.Date, r.Title, r.Price, r.Currency, r.Category}); err != nil {
			return nil, fmt.Errorf("failed to write XLSX row: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render XLSX export: %w", err)
	}
	return buf.Bytes(), nil
}

// rawImportDocument keeps each top-level section as raw JSON so a malformed
// section is reported by name instead of failing the whole decode.
type rawImportDocument struct {
	Expenses        json.RawMessage `json:"expenses"`
	Accounts        json.RawMessage `json:"accounts"`
	Categories      json.RawMessage `json:"categories"`
	MonthlyExpenses json.RawMessage `json:"monthlyExpenses"`
	Incomes         json.RawMessage `json:"incomes"`
}

// ValidateImport parses and shape-checks an uploaded document without
// touching any state. The expenses section is mandatory; every other section
// is validated only when present. All violations are collected before
// returning so the client sees the full damage report at once.
func (s *portabilityService) ValidateImport(ctx context.Context, raw []byte) (*dto.PortableAppData, error) {
	var doc rawImportDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("file is not a valid JSON document: %w", apperrors.ErrValidation)
	}

	violations := &apperrors.SchemaValidationError{}
	payload := &dto.PortableAppData{}

	if doc.Expenses == nil {
		violations.Add("expenses", "section is required")
	} else {
		decodeSection(s.validate, violations, "expenses", doc.Expenses, &payload.Expenses)
	}
	if doc.Accounts != nil {
		decodeSection(s.validate, violations, "accounts", doc.Accounts, &payload.Accounts)
	}
	if doc.Categories != nil {
		decodeSection(s.validate, violations, "categories", doc.Categories, &payload.Categories)
	}
	if doc.MonthlyExpenses != nil {
		decodeSection(s.validate, violations, "monthlyExpenses", doc.MonthlyExpenses, &payload.MonthlyExpenses)
	}
	if doc.Incomes != nil {
		decodeSection(s.validate, violations, "incomes", doc.Incomes, &payload.Incomes)
	}

	if violations.HasViolations() {
		s.LogInfo(ctx, "Import rejected", slog.Int("failed_sections", len(violations.Violations)))
		return nil, violations
	}
	return payload, nil
}

// decodeSection unmarshals one section into records and runs struct
// validation on each record, collecting violations under the section name.
func decodeSection[T any](validate *validator.Validate, violations *apperrors.SchemaValidationError, section string, raw json.RawMessage, out *[]T) {
	if err := json.Unmarshal(raw, out); err != nil {
		violations.Add(section, "not a valid array of records")
		return
	}
	for i, record := range *out {
		if err := validate.Struct(record); err != nil {
			var fieldErrs validator.ValidationErrors
			if !errors.As(err, &fieldErrs) {
				violations.Add(section, fmt.Sprintf("record %d is invalid", i))
				continue
			}
			for _, fe := range fieldErrs {
				violations.Add(section, fmt.Sprintf("record %d: field %s failed %s check", i, fe.Field(), fe.Tag()))
			}
		}
	}
}

// CommitImport replaces the current state with the validated payload. The
// merge policy fills every absent section with a sensible fallback:
//
//   - categories: imported ones when present, current ones otherwise; when
//     no category section is imported, expense category names with no match
//     get a fresh category appended
//   - accounts: imported, else current, else the defaults; all balances
//     come from the file, never recomputed from expense history
//   - monthly templates: imported ones when present, current ones otherwise
//   - payment statuses: always cleared
//   - incomes: replaced from the file with regenerated ids
//
// Expenses whose category name resolves to nothing fall back to Misc, and
// all expenses are attached to the first account of the final set.
func (s *portabilityService) CommitImport(ctx context.Context, payload *dto.PortableAppData) error {
	err := s.store.Update(ctx, func(data *domain.AppData) error {
		// Categories first; expense relinking depends on the final set.
		categories := data.Categories
		categoriesImported := len(payload.Categories) > 0
		if categoriesImported {
			categories = make([]domain.Category, 0, len(payload.Categories))
			for _, c := range payload.Categories {
				categories = append(categories, domain.Category{
					CategoryID:      *c.ID,
					Name:            *c.Name,
					AllowedPerMonth: c.AllowedPerMonth,
				})
			}
		}
		hasMisc := false
		for _, c := range categories {
			if c.CategoryID == domain.MiscCategoryID {
				hasMisc = true
				break
			}
		}
		if !hasMisc {
			categories = append(categories, domain.Category{CategoryID: domain.MiscCategoryID, Name: "Misc"})
		}

		categoryIDByName := make(map[string]string, len(categories))
		for _, c := range categories {
			categoryIDByName[strings.ToLower(c.Name)] = c.CategoryID
		}

		accounts := data.Accounts
		if len(payload.Accounts) > 0 {
			accounts = make([]domain.Account, 0, len(payload.Accounts))
			for _, a := range payload.Accounts {
				account := domain.Account{
					AccountID:           *a.ID,
					Name:                *a.Name,
					Balances:            a.Balances,
					SupportedCurrencies: a.SupportedCurrencies,
				}
				if len(account.SupportedCurrencies) == 0 {
					account.SupportedCurrencies = append([]domain.Currency{}, domain.SupportedCurrencies...)
				}
				account.EnsureBalances()
				accounts = append(accounts, account)
			}
		}
		if len(accounts) == 0 {
			accounts = domain.DefaultAccounts()
		}
		defaultAccountID := accounts[0].AccountID

		expenses := make([]domain.Expense, 0, len(payload.Expenses))
		for _, e := range payload.Expenses {
			categoryID, ok := categoryIDByName[strings.ToLower(*e.Category)]
			if !ok {
				// With no imported category set, unknown names get their own
				// derived category. An imported set is authoritative, so
				// names outside it collapse into Misc instead.
				if categoriesImported || strings.TrimSpace(*e.Category) == "" {
					categoryID = domain.MiscCategoryID
				} else {
					category := domain.Category{CategoryID: uuid.NewString(), Name: *e.Category}
					categories = append(categories, category)
					categoryIDByName[strings.ToLower(category.Name)] = category.CategoryID
					categoryID = category.CategoryID
				}
			}
			expense := domain.Expense{
				ExpenseID:  *e.ID,
				Title:      *e.Title,
				Price:      *e.Price,
				Currency:   *e.Currency,
				CategoryID: categoryID,
				Date:       *e.Date,
				AccountID:  defaultAccountID,
			}
			if e.IsMonthlyPayment != nil {
				expense.IsMonthlyPayment = *e.IsMonthlyPayment
			}
			expenses = append(expenses, expense)
		}

		monthlyExpenses := data.MonthlyExpenses
		if len(payload.MonthlyExpenses) > 0 {
			monthlyExpenses = make([]domain.MonthlyExpense, 0, len(payload.MonthlyExpenses))
			for _, m := range payload.MonthlyExpenses {
				monthlyExpenses = append(monthlyExpenses, domain.MonthlyExpense{
					MonthlyExpenseID: *m.ID,
					Title:            *m.Title,
					Price:            *m.Price,
					Currency:         *m.Currency,
					CategoryID:       *m.CategoryID,
				})
			}
		}

		incomes := make([]domain.Income, 0, len(payload.Incomes))
		for _, i := range payload.Incomes {
			income := domain.Income{
				IncomeID:  uuid.NewString(),
				Amount:    *i.Amount,
				Currency:  *i.Currency,
				Date:      *i.Date,
				AccountID: defaultAccountID,
			}
			if i.Title != nil {
				income.Title = *i.Title
			}
			if i.AccountID != nil {
				income.AccountID = *i.AccountID
			}
			incomes = append(incomes, income)
		}

		data.Accounts = accounts
		data.Categories = categories
		data.Expenses = expenses
		data.MonthlyExpenses = monthlyExpenses
		data.MonthlyPaymentStatuses = nil
		data.Incomes = incomes
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Import commit failed")
		return err
	}

	s.LogInfo(ctx, "Import committed",
		slog.Int("expenses", len(payload.Expenses)),
		slog.Int("accounts", len(payload.Accounts)),
		slog.Int("categories", len(payload.Categories)))
	return nil
}
