package importer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/spendsight/spendsight/internal/categorize"
	"github.com/spendsight/spendsight/internal/id"
	"github.com/spendsight/spendsight/internal/model"
)

// ErrNoSchema means neither the hint nor the header heuristics identified the
// bank. The caller should ask the user to pick one explicitly.
var ErrNoSchema = errors.New("could not detect the bank format; choose one explicitly")

// Result is the outcome of importing one statement file.
type Result struct {
	Transactions []model.Transaction
	Account      *model.AccountInfo // nil when the file was rejected
	Schema       string             // schema ID, "" when the file was rejected
	Errors       []string
}

// ValidationResult reports whether content looks like an importable file.
type ValidationResult struct {
	Valid bool
	Error string
}

// AccountResolver finds the configured account for a bank.
type AccountResolver interface {
	ForInstitution(institution string) (model.Account, bool)
}

// Importer turns delimited statement text into canonical transactions.
type Importer struct {
	catalog   *Catalog
	accounts  AccountResolver
	accountID string
	loc       *time.Location
	log       zerolog.Logger
}

// Option configures an Importer.
type Option func(*Importer)

// WithAccounts attributes imports to configured accounts by institution.
func WithAccounts(r AccountResolver) Option { return func(im *Importer) { im.accounts = r } }

// WithAccountID forces every imported transaction onto one account.
func WithAccountID(accountID string) Option { return func(im *Importer) { im.accountID = accountID } }

// WithLocation sets the zone for dates that carry no offset.
func WithLocation(loc *time.Location) Option { return func(im *Importer) { im.loc = loc } }

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option { return func(im *Importer) { im.log = l } }

// New creates an Importer over the default catalog.
func New(opts ...Option) *Importer {
	im := &Importer{
		catalog: DefaultCatalog(),
		loc:     time.UTC,
		log:     zerolog.Nop(),
	}
	for _, o := range opts {
		o(im)
	}
	return im
}

const (
	minLines   = 2
	minColumns = 2
)

// Validate checks that content has a header plus at least one row and that the
// header has at least two columns.
func Validate(content string) ValidationResult {
	var nonBlank []string
	for _, l := range splitLines(content) {
		if !isBlank(l) {
			nonBlank = append(nonBlank, l)
		}
	}
	if len(nonBlank) < minLines {
		return ValidationResult{Error: fmt.Sprintf("file must contain a header and at least one transaction (found %d non-blank lines)", len(nonBlank))}
	}
	if cols := len(ParseLine(nonBlank[0])); cols < minColumns {
		return ValidationResult{Error: fmt.Sprintf("header must have at least %d columns (found %d)", minColumns, cols)}
	}
	return ValidationResult{Valid: true}
}

// columnMap holds resolved column indexes; -1 means absent.
type columnMap struct {
	date, desc, amount, debit, credit, typ int
}

func indexOf(header []string, candidates []string) int {
	for _, want := range candidates {
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), want) {
				return i
			}
		}
	}
	return -1
}

func resolveColumns(s Schema, header []string) (columnMap, error) {
	cols := columnMap{
		date:   indexOf(header, s.DateColumns),
		desc:   indexOf(header, s.DescriptionColumns),
		amount: -1,
		debit:  -1,
		credit: -1,
		typ:    -1,
	}
	if cols.date < 0 {
		return cols, fmt.Errorf("%s export is missing a date column (expected one of %s)", s.Name, strings.Join(s.DateColumns, ", "))
	}
	if cols.desc < 0 {
		return cols, fmt.Errorf("%s export is missing a description column (expected one of %s)", s.Name, strings.Join(s.DescriptionColumns, ", "))
	}
	if s.HasDebitCredit() {
		cols.debit = indexOf(header, s.AmountColumns[:1])
		cols.credit = indexOf(header, s.AmountColumns[1:])
		if cols.debit < 0 && cols.credit < 0 {
			return cols, fmt.Errorf("%s export is missing %s/%s columns", s.Name, s.AmountColumns[0], s.AmountColumns[1])
		}
	} else {
		cols.amount = indexOf(header, s.AmountColumns)
		if cols.amount < 0 {
			return cols, fmt.Errorf("%s export is missing an amount column (expected %s)", s.Name, strings.Join(s.AmountColumns, ", "))
		}
	}
	if s.TypeColumn != "" {
		cols.typ = indexOf(header, []string{s.TypeColumn})
	}
	return cols, nil
}

func field(fields []string, i int) string {
	if i < 0 || i >= len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[i])
}

func failed(msg string) Result {
	return Result{Errors: []string{msg}}
}

// Import parses a whole statement file. Whole-file problems return no
// transactions and a single error; row problems are reported per line and the
// remaining rows are still imported. Rows whose amount is zero or unparseable
// are dropped without an error.
func (im *Importer) Import(content, hint string) Result {
	if v := Validate(content); !v.Valid {
		return failed(v.Error)
	}

	lines := splitLines(content)
	headerIdx := firstNonBlank(lines)
	header := ParseLine(lines[headerIdx])

	schema, ok := im.catalog.Detect(header, hint)
	if !ok {
		im.log.Debug().Strs("header", header).Str("hint", hint).Msg("no schema matched")
		return failed(ErrNoSchema.Error())
	}
	im.log.Debug().Str("schema", schema.ID).Msg("detected statement format")

	cols, err := resolveColumns(schema, header)
	if err != nil {
		return failed(err.Error())
	}
	if cols.typ < 0 {
		// No type column in this file: fall back to the amount sign.
		schema.TypeColumn = ""
	}

	account := im.resolveAccount(schema)
	res := Result{Account: account, Schema: schema.ID}

	for i := headerIdx + 1; i < len(lines); i++ {
		line := lines[i]
		if isBlank(line) {
			continue
		}
		lineNo := i + 1
		fields := ParseLine(line)

		rawDate := field(fields, cols.date)
		date, ok := ParseDate(rawDate, im.loc)
		if !ok {
			res.Errors = append(res.Errors, fmt.Sprintf("line %d: invalid date %q", lineNo, rawDate))
			continue
		}

		desc := field(fields, cols.desc)
		if desc == "" {
			res.Errors = append(res.Errors, fmt.Sprintf("line %d: missing description", lineNo))
			continue
		}

		af := amountFields{
			typeValue: field(fields, cols.typ),
			amount:    field(fields, cols.amount),
			debit:     field(fields, cols.debit),
			credit:    field(fields, cols.credit),
		}
		typ, amount, outcome := resolveType(schema, af)
		// The ledger keeps whole cents.
		amount = amount.Round(2)
		if outcome == resolved && amount.IsZero() {
			outcome = dropRow
		}
		switch outcome {
		case dropRow:
			im.log.Debug().Int("line", lineNo).Msg("dropping row without amount")
			continue
		case ambiguousRow:
			res.Errors = append(res.Errors, fmt.Sprintf("line %d: both debit (%s) and credit (%s) are set", lineNo, af.debit, af.credit))
			continue
		}

		merchant := ExtractMerchant(desc)
		res.Transactions = append(res.Transactions, model.Transaction{
			ID:           id.Transaction(account.AccountID, lineNo, line),
			AccountID:    account.AccountID,
			Date:         date,
			Description:  desc,
			Amount:       amount,
			Type:         typ,
			Category:     categorize.Categorize(desc, merchant),
			MerchantName: merchant,
		})
	}

	for _, e := range res.Errors {
		im.log.Debug().Str("schema", schema.ID).Msg(e)
	}
	return res
}

// Detect identifies the schema of content without importing any rows.
func (im *Importer) Detect(content, hint string) (Schema, error) {
	if v := Validate(content); !v.Valid {
		return Schema{}, errors.New(v.Error)
	}
	lines := splitLines(content)
	schema, ok := im.catalog.Detect(ParseLine(lines[firstNonBlank(lines)]), hint)
	if !ok {
		return Schema{}, ErrNoSchema
	}
	return schema, nil
}

// firstNonBlank returns the index of the header line. Callers validate first,
// so one exists.
func firstNonBlank(lines []string) int {
	for i, l := range lines {
		if !isBlank(l) {
			return i
		}
	}
	return 0
}

func (im *Importer) resolveAccount(s Schema) *model.AccountInfo {
	info := &model.AccountInfo{
		AccountID:   s.ID,
		Institution: s.Name,
		Name:        s.Name,
	}
	if im.accounts != nil {
		if acct, ok := im.accounts.ForInstitution(s.ID); ok {
			info.AccountID = acct.ID
			info.Name = acct.Name
		}
	}
	if im.accountID != "" {
		info.AccountID = im.accountID
	}
	return info
}

// FileInfo describes a CSV file in an import directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// processedDir is the subdirectory imported files are moved into.
const processedDir = "processed"

// Scan returns the CSV files directly inside dir.
func Scan(dir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// MarkProcessed moves a file from dir to dir/processed/.
func MarkProcessed(dir, fileName string) error {
	src := filepath.Join(dir, fileName)
	dstDir := filepath.Join(dir, processedDir)

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	dst := filepath.Join(dstDir, fileName)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}
