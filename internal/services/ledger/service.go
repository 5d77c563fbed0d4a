package ledger

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"bookkeeping-backend/internal/models"
	"bookkeeping-backend/internal/repository"
)

// Surface describes one of the two API views over the shared transaction
// collection. The omzet surface sees every active transaction; the expense
// surface is restricted to the expense-type subset.
type Surface struct {
	Label        string
	Types        []string
	RestrictView bool
}

var (
	Omzet   = Surface{Label: "Omzet", Types: []string{"Pemasukan", "Pengeluaran"}}
	Expense = Surface{Label: "Expense", Types: []string{"Operasional", "Bahan Baku"}, RestrictView: true}
)

func (s Surface) allowsType(t string) bool {
	for _, v := range s.Types {
		if v == t {
			return true
		}
	}
	return false
}

func (s Surface) typeMessage() string {
	quoted := make([]string, len(s.Types))
	for i, v := range s.Types {
		quoted[i] = "'" + v + "'"
	}
	return "transaction_type must be " + strings.Join(quoted, " or ")
}

// Service implements the transaction pipeline: filtered reads and validated
// writes against the transaction collection, with branch/account references
// resolved and snapshotted at write time.
type Service struct {
	store repository.Store
}

func NewService(store repository.Store) *Service {
	return &Service{store: store}
}

// View is the API projection of a transaction; dates go out as DD/MM/YYYY.
type View struct {
	TransactionID   string            `json:"transaction_id"`
	TransactionDate string            `json:"transaction_date"`
	TransactionType string            `json:"transaction_type"`
	ReferenceNo     string            `json:"reference_no"`
	Notes           string            `json:"notes"`
	TotalAmount     float64           `json:"total_amount"`
	Status          string            `json:"status"`
	BranchID        string            `json:"branch_id"`
	BranchName      string            `json:"branch_name"`
	AccountID       string            `json:"account_id"`
	AccountCode     string            `json:"account_code"`
	AccountName     string            `json:"account_name"`
	Files           []models.FileMeta `json:"files"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

func toView(t *models.Transaction) View {
	files := t.Files
	if files == nil {
		files = []models.FileMeta{}
	}
	return View{
		TransactionID:   t.ID,
		TransactionDate: toDisplayDate(t.TransactionDate),
		TransactionType: t.TransactionType,
		ReferenceNo:     t.ReferenceNo,
		Notes:           t.Notes,
		TotalAmount:     t.TotalAmount,
		Status:          t.Status,
		BranchID:        t.BranchID,
		BranchName:      t.BranchName,
		AccountID:       t.AccountID,
		AccountCode:     t.AccountCode,
		AccountName:     t.AccountName,
		Files:           files,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

// ListFilter carries the optional query criteria; zero values mean "no
// filter". Start and End accept DD/MM/YYYY, DD-MM-YYYY or DDMMYYYY.
type ListFilter struct {
	Search    string
	Type      string
	AccountID string
	BranchID  string
	StartDate string
	EndDate   string
}

// List returns the surface's active transactions matching the filter,
// newest-created first.
func (s *Service) List(sur Surface, f ListFilter) ([]View, error) {
	var start, end time.Time
	var hasStart, hasEnd bool
	if f.StartDate != "" {
		t, ok := parseFilterDate(f.StartDate)
		if !ok {
			return nil, badRequest("Invalid date format", "start_date must be DD/MM/YYYY, DD-MM-YYYY or DDMMYYYY")
		}
		start, hasStart = t, true
	}
	if f.EndDate != "" {
		t, ok := parseFilterDate(f.EndDate)
		if !ok {
			return nil, badRequest("Invalid date format", "end_date must be DD/MM/YYYY, DD-MM-YYYY or DDMMYYYY")
		}
		end, hasEnd = t, true
	}

	all, err := s.store.Transactions().List()
	if err != nil {
		return nil, err
	}

	matched := make([]models.Transaction, 0, len(all))
	search := strings.ToLower(f.Search)
	for i := range all {
		t := &all[i]
		if t.Status != models.StatusActive {
			continue
		}
		if sur.RestrictView && !sur.allowsType(t.TransactionType) {
			continue
		}
		if f.Type != "" && t.TransactionType != f.Type {
			continue
		}
		if f.AccountID != "" && t.AccountID != f.AccountID {
			continue
		}
		if f.BranchID != "" && t.BranchID != f.BranchID {
			continue
		}
		if hasStart || hasEnd {
			d, ok := parseStorageDate(t.TransactionDate)
			if !ok {
				continue
			}
			if hasStart && d.Before(start) {
				continue
			}
			if hasEnd && d.After(end) {
				continue
			}
		}
		if search != "" && !matchesSearch(t, search) {
			continue
		}
		matched = append(matched, *t)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	views := make([]View, 0, len(matched))
	for i := range matched {
		views = append(views, toView(&matched[i]))
	}
	return views, nil
}

func matchesSearch(t *models.Transaction, search string) bool {
	for _, field := range []string{t.ReferenceNo, t.Notes, t.BranchName, t.AccountName} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

// Get returns one active transaction visible on the surface.
func (s *Service) Get(sur Surface, id string) (*View, error) {
	t, err := s.getActive(sur, id)
	if err != nil {
		return nil, err
	}
	v := toView(t)
	return &v, nil
}

// FileInput is file metadata as submitted by the client.
type FileInput struct {
	ID           string `json:"id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	Size         int64  `json:"size"`
	MimeType     string `json:"mime_type"`
}

type CreateInput struct {
	TransactionDate string      `json:"transaction_date"`
	TransactionType string      `json:"transaction_type"`
	ReferenceNo     string      `json:"reference_no"`
	BranchID        string      `json:"branch_id"`
	AccountID       string      `json:"account_id"`
	Notes           string      `json:"notes"`
	TotalAmount     float64     `json:"total_amount"`
	Files           []FileInput `json:"files"`
}

// Create validates the payload rule by rule, resolves the branch and account
// references, snapshots their names and appends the new transaction. The
// first violated rule is returned; nothing is mutated on failure.
func (s *Service) Create(sur Surface, in CreateInput) (*View, error) {
	if in.TransactionDate == "" || in.TransactionType == "" || in.ReferenceNo == "" ||
		in.BranchID == "" || in.AccountID == "" || in.TotalAmount == 0 {
		return nil, badRequest("Missing required fields",
			"transaction_date, transaction_type, reference_no, branch_id, account_id, and total_amount are required")
	}
	if !validDisplayDate(in.TransactionDate) {
		return nil, badRequest("Invalid date format", "Date must be in DD/MM/YYYY format")
	}
	if !sur.allowsType(in.TransactionType) {
		return nil, badRequest("Invalid transaction type", sur.typeMessage())
	}
	branch, err := s.lookupBranch(in.BranchID)
	if err != nil {
		return nil, err
	}
	account, err := s.lookupAccount(in.AccountID)
	if err != nil {
		return nil, err
	}
	if in.TotalAmount <= 0 {
		return nil, badRequest("Invalid total amount", "total_amount must be a positive number")
	}
	if err := s.checkReferenceUnique(in.ReferenceNo, ""); err != nil {
		return nil, err
	}
	files, err := processFiles(in.Files, false)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	t := models.Transaction{
		ID:              uuid.New().String(),
		TransactionDate: toStorageDate(in.TransactionDate),
		TransactionType: in.TransactionType,
		ReferenceNo:     in.ReferenceNo,
		BranchID:        branch.ID,
		BranchName:      branch.Name,
		AccountID:       account.AccountID,
		AccountCode:     account.AccountCode,
		AccountName:     account.AccountName,
		Notes:           in.Notes,
		TotalAmount:     in.TotalAmount,
		Status:          models.StatusActive,
		Files:           files,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.store.Transactions().Create(&t); err != nil {
		return nil, err
	}
	v := toView(&t)
	return &v, nil
}

type UpdateInput struct {
	TransactionDate *string      `json:"transaction_date"`
	TransactionType *string      `json:"transaction_type"`
	ReferenceNo     *string      `json:"reference_no"`
	BranchID        *string      `json:"branch_id"`
	AccountID       *string      `json:"account_id"`
	Notes           *string      `json:"notes"`
	TotalAmount     *float64     `json:"total_amount"`
	Files           *[]FileInput `json:"files"`
}

// Update applies the provided fields only. A new branch or account reference
// is re-resolved and its name snapshot refreshed; a files field replaces the
// whole sequence.
func (s *Service) Update(sur Surface, id string, in UpdateInput) (*View, error) {
	t, err := s.getActive(sur, id)
	if err != nil {
		return nil, err
	}

	if in.TransactionDate != nil {
		if !validDisplayDate(*in.TransactionDate) {
			return nil, badRequest("Invalid date format", "Date must be in DD/MM/YYYY format")
		}
	}
	if in.TransactionType != nil && !sur.allowsType(*in.TransactionType) {
		return nil, badRequest("Invalid transaction type", sur.typeMessage())
	}
	if in.BranchID != nil {
		branch, err := s.lookupBranch(*in.BranchID)
		if err != nil {
			return nil, err
		}
		t.BranchID = branch.ID
		t.BranchName = branch.Name
	}
	if in.AccountID != nil {
		account, err := s.lookupAccount(*in.AccountID)
		if err != nil {
			return nil, err
		}
		t.AccountID = account.AccountID
		t.AccountCode = account.AccountCode
		t.AccountName = account.AccountName
	}
	if in.TotalAmount != nil && *in.TotalAmount <= 0 {
		return nil, badRequest("Invalid total amount", "total_amount must be a positive number")
	}
	if in.ReferenceNo != nil && *in.ReferenceNo != t.ReferenceNo {
		if err := s.checkReferenceUnique(*in.ReferenceNo, t.ID); err != nil {
			return nil, err
		}
	}
	if in.Files != nil {
		files, err := processFiles(*in.Files, true)
		if err != nil {
			return nil, err
		}
		t.Files = files
	}

	if in.TransactionDate != nil {
		t.TransactionDate = toStorageDate(*in.TransactionDate)
	}
	if in.TransactionType != nil {
		t.TransactionType = *in.TransactionType
	}
	if in.ReferenceNo != nil {
		t.ReferenceNo = *in.ReferenceNo
	}
	if in.Notes != nil {
		t.Notes = *in.Notes
	}
	if in.TotalAmount != nil {
		t.TotalAmount = *in.TotalAmount
	}
	t.UpdatedAt = time.Now()

	if err := s.store.Transactions().Update(t); err != nil {
		return nil, err
	}
	v := toView(t)
	return &v, nil
}

// Deactivate soft-deletes the transaction; the record stays in the store.
func (s *Service) Deactivate(sur Surface, id string) error {
	t, err := s.getActive(sur, id)
	if err != nil {
		return err
	}
	t.Status = models.StatusInactive
	t.UpdatedAt = time.Now()
	return s.store.Transactions().Update(t)
}

// AddFiles appends validated metadata, each entry with a fresh identifier,
// onto the transaction's existing files.
func (s *Service) AddFiles(sur Surface, id string, files []FileInput) (*View, error) {
	t, err := s.getActive(sur, id)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, badRequest("Files array is required and cannot be empty", "")
	}
	processed, err := processFiles(files, false)
	if err != nil {
		return nil, err
	}
	t.Files = append(t.Files, processed...)
	t.UpdatedAt = time.Now()
	if err := s.store.Transactions().Update(t); err != nil {
		return nil, err
	}
	v := toView(t)
	return &v, nil
}

// RemoveFile deletes one metadata entry by its id, preserving the order of
// the rest.
func (s *Service) RemoveFile(sur Surface, id, fileID string) error {
	t, err := s.getActive(sur, id)
	if err != nil {
		return err
	}
	idx := -1
	for i := range t.Files {
		if t.Files[i].ID == fileID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return notFound("File not found")
	}
	t.Files = append(t.Files[:idx], t.Files[idx+1:]...)
	t.UpdatedAt = time.Now()
	return s.store.Transactions().Update(t)
}

func (s *Service) getActive(sur Surface, id string) (*models.Transaction, error) {
	t, err := s.store.Transactions().Get(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound(sur.Label + " not found")
		}
		return nil, err
	}
	if t.Status != models.StatusActive {
		return nil, notFound(sur.Label + " not found")
	}
	if sur.RestrictView && !sur.allowsType(t.TransactionType) {
		return nil, notFound(sur.Label + " not found")
	}
	return t, nil
}

func (s *Service) lookupBranch(id string) (*models.Branch, error) {
	b, err := s.store.Branches().Get(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, badRequest("Branch not found", "Invalid branch_id")
		}
		return nil, err
	}
	return b, nil
}

func (s *Service) lookupAccount(id string) (*models.Account, error) {
	a, err := s.store.Accounts().Get(id)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if err != nil || !a.IsActive {
		return nil, badRequest("Account not found", "Invalid account_id or account is inactive")
	}
	return a, nil
}

func (s *Service) checkReferenceUnique(ref, excludeID string) error {
	existing, err := s.store.Transactions().FindActiveByReference(ref, excludeID)
	if err != nil {
		return err
	}
	if existing != nil {
		return conflict("Reference number already exists", "reference_no must be unique")
	}
	return nil
}

// processFiles validates and stamps submitted file metadata. keepIDs is used
// on whole-sequence replacement, where entries may carry their existing ids.
func processFiles(files []FileInput, keepIDs bool) ([]models.FileMeta, error) {
	out := make([]models.FileMeta, 0, len(files))
	for i, f := range files {
		if f.Filename == "" || f.OriginalName == "" {
			return nil, badRequest("Invalid file entry",
				fmt.Sprintf("file %d must have filename and original_name", i))
		}
		id := uuid.New().String()
		if keepIDs && f.ID != "" {
			id = f.ID
		}
		mime := f.MimeType
		if mime == "" {
			mime = "application/octet-stream"
		}
		out = append(out, models.FileMeta{
			ID:           id,
			Filename:     f.Filename,
			OriginalName: f.OriginalName,
			Size:         f.Size,
			MimeType:     mime,
			UploadedAt:   time.Now(),
		})
	}
	return out, nil
}
