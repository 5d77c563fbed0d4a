package ledger

import (
	"errors"
	"net/http"
	"testing"

	"bookkeeping-backend/internal/repository"
)

func newTestService(t *testing.T) (*Service, repository.Store) {
	t.Helper()
	store := repository.NewMemoryStore()
	if err := repository.Seed(store); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	return NewService(store), store
}

func validCreate(ref string) CreateInput {
	return CreateInput{
		TransactionDate: "25/12/2024",
		TransactionType: "Pemasukan",
		ReferenceNo:     ref,
		BranchID:        "branch-1",
		AccountID:       "coa-1",
		TotalAmount:     150000,
	}
}

func wantStatus(t *testing.T, err error, status int) *Error {
	t.Helper()
	var le *Error
	if !errors.As(err, &le) {
		t.Fatalf("expected *ledger.Error, got %v", err)
	}
	if le.Status != status {
		t.Fatalf("status = %d (%s), want %d", le.Status, le.Err, status)
	}
	return le
}

func TestCreateStoresDateInStorageForm(t *testing.T) {
	svc, store := newTestService(t)

	view, err := svc.Create(Omzet, validCreate("INV-001"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if view.TransactionDate != "25/12/2024" {
		t.Fatalf("view date = %q, want 25/12/2024", view.TransactionDate)
	}
	stored, err := store.Transactions().Get(view.TransactionID)
	if err != nil {
		t.Fatalf("get stored: %v", err)
	}
	if stored.TransactionDate != "25-12-2024" {
		t.Fatalf("stored date = %q, want 25-12-2024", stored.TransactionDate)
	}
	if stored.BranchName != "Jakarta Pusat" || stored.AccountCode != "4-10001" || stored.AccountName != "Penjualan" {
		t.Fatalf("reference snapshot not copied: %+v", stored)
	}

	got, err := svc.Get(Omzet, view.TransactionID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.TransactionDate != "25/12/2024" {
		t.Fatalf("round-trip date = %q, want 25/12/2024", got.TransactionDate)
	}
}

func TestCreateReturnsFirstViolation(t *testing.T) {
	svc, _ := newTestService(t)

	missing := validCreate("INV-010")
	missing.AccountID = ""
	le := wantStatus(t, mustFail(t, svc, missing), http.StatusBadRequest)
	if le.Err != "Missing required fields" {
		t.Fatalf("err = %q, want Missing required fields", le.Err)
	}

	badDate := validCreate("INV-011")
	badDate.TransactionDate = "25-12-2024"
	le = wantStatus(t, mustFail(t, svc, badDate), http.StatusBadRequest)
	if le.Err != "Invalid date format" {
		t.Fatalf("err = %q, want Invalid date format", le.Err)
	}

	badType := validCreate("INV-012")
	badType.TransactionType = "Operasional" // expense type on the omzet surface
	le = wantStatus(t, mustFail(t, svc, badType), http.StatusBadRequest)
	if le.Err != "Invalid transaction type" {
		t.Fatalf("err = %q, want Invalid transaction type", le.Err)
	}

	badBranch := validCreate("INV-013")
	badBranch.BranchID = "branch-99"
	le = wantStatus(t, mustFail(t, svc, badBranch), http.StatusBadRequest)
	if le.Err != "Branch not found" {
		t.Fatalf("err = %q, want Branch not found", le.Err)
	}

	badAccount := validCreate("INV-014")
	badAccount.AccountID = "coa-99"
	le = wantStatus(t, mustFail(t, svc, badAccount), http.StatusBadRequest)
	if le.Err != "Account not found" {
		t.Fatalf("err = %q, want Account not found", le.Err)
	}

	badAmount := validCreate("INV-015")
	badAmount.TotalAmount = -500
	le = wantStatus(t, mustFail(t, svc, badAmount), http.StatusBadRequest)
	if le.Err != "Invalid total amount" {
		t.Fatalf("err = %q, want Invalid total amount", le.Err)
	}
}

func mustFail(t *testing.T, svc *Service, in CreateInput) error {
	t.Helper()
	_, err := svc.Create(Omzet, in)
	if err == nil {
		t.Fatal("create unexpectedly succeeded")
	}
	return err
}

func TestCreateRejectsInactiveAccount(t *testing.T) {
	svc, store := newTestService(t)

	account, err := store.Accounts().Get("coa-1")
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	account.IsActive = false
	if err := store.Accounts().Update(account); err != nil {
		t.Fatalf("update account: %v", err)
	}

	le := wantStatus(t, mustFail(t, svc, validCreate("INV-020")), http.StatusBadRequest)
	if le.Err != "Account not found" {
		t.Fatalf("err = %q, want Account not found", le.Err)
	}
}

func TestReferenceUniquenessAndReuseAfterDeactivate(t *testing.T) {
	svc, _ := newTestService(t)

	first, err := svc.Create(Omzet, validCreate("INV-001"))
	if err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	_, err = svc.Create(Omzet, validCreate("INV-001"))
	wantStatus(t, err, http.StatusConflict)

	if err := svc.Deactivate(Omzet, first.TransactionID); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}

	if _, err := svc.Create(Omzet, validCreate("INV-001")); err != nil {
		t.Fatalf("reuse after deactivate failed: %v", err)
	}
}

func TestSoftDeletedTransactionsHidden(t *testing.T) {
	svc, store := newTestService(t)

	view, err := svc.Create(Omzet, validCreate("INV-030"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := svc.Deactivate(Omzet, view.TransactionID); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}

	views, err := svc.List(Omzet, ListFilter{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for _, v := range views {
		if v.TransactionID == view.TransactionID {
			t.Fatal("soft-deleted transaction still listed")
		}
	}

	_, err = svc.Get(Omzet, view.TransactionID)
	wantStatus(t, err, http.StatusNotFound)

	// still physically present
	if _, err := store.Transactions().Get(view.TransactionID); err != nil {
		t.Fatalf("record should remain in storage: %v", err)
	}
}

func TestListDateRangeInclusive(t *testing.T) {
	svc, _ := newTestService(t)

	dates := map[string]string{
		"INV-101": "01/01/2024",
		"INV-102": "15/01/2024",
		"INV-103": "31/01/2024",
		"INV-104": "05/02/2024",
	}
	for ref, d := range dates {
		in := validCreate(ref)
		in.TransactionDate = d
		if _, err := svc.Create(Omzet, in); err != nil {
			t.Fatalf("create %s failed: %v", ref, err)
		}
	}

	for _, boundary := range []struct{ start, end string }{
		{"01/01/2024", "31/01/2024"},
		{"01-01-2024", "31-01-2024"},
		{"01012024", "31012024"},
	} {
		views, err := svc.List(Omzet, ListFilter{StartDate: boundary.start, EndDate: boundary.end})
		if err != nil {
			t.Fatalf("list %v failed: %v", boundary, err)
		}
		if len(views) != 3 {
			t.Fatalf("range %v matched %d transactions, want 3", boundary, len(views))
		}
		for _, v := range views {
			if v.ReferenceNo == "INV-104" {
				t.Fatal("out-of-range transaction included")
			}
		}
	}

	_, err := svc.List(Omzet, ListFilter{StartDate: "not-a-date"})
	wantStatus(t, err, http.StatusBadRequest)
}

func TestListSortsNewestFirst(t *testing.T) {
	svc, _ := newTestService(t)

	for _, ref := range []string{"INV-201", "INV-202", "INV-203"} {
		if _, err := svc.Create(Omzet, validCreate(ref)); err != nil {
			t.Fatalf("create %s failed: %v", ref, err)
		}
	}
	views, err := svc.List(Omzet, ListFilter{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(views) != 3 {
		t.Fatalf("got %d transactions, want 3", len(views))
	}
	for i := 1; i < len(views); i++ {
		if views[i].CreatedAt.After(views[i-1].CreatedAt) {
			t.Fatal("list not sorted by created_at descending")
		}
	}
}

func TestExpenseSurfaceRestriction(t *testing.T) {
	svc, _ := newTestService(t)

	expense := validCreate("EXP-001")
	expense.TransactionType = "Operasional"
	expense.AccountID = "coa-3"
	if _, err := svc.Create(Expense, expense); err != nil {
		t.Fatalf("expense create failed: %v", err)
	}
	if _, err := svc.Create(Omzet, validCreate("INV-301")); err != nil {
		t.Fatalf("omzet create failed: %v", err)
	}

	expenseViews, err := svc.List(Expense, ListFilter{})
	if err != nil {
		t.Fatalf("expense list failed: %v", err)
	}
	if len(expenseViews) != 1 || expenseViews[0].ReferenceNo != "EXP-001" {
		t.Fatalf("expense surface leaked revenue transactions: %+v", expenseViews)
	}

	// the omzet surface sees every active transaction
	omzetViews, err := svc.List(Omzet, ListFilter{})
	if err != nil {
		t.Fatalf("omzet list failed: %v", err)
	}
	if len(omzetViews) != 2 {
		t.Fatalf("omzet surface sees %d transactions, want 2", len(omzetViews))
	}

	// a revenue transaction is invisible through the expense surface
	_, err = svc.Get(Expense, omzetIDByRef(t, omzetViews, "INV-301"))
	wantStatus(t, err, http.StatusNotFound)
}

func omzetIDByRef(t *testing.T, views []View, ref string) string {
	t.Helper()
	for _, v := range views {
		if v.ReferenceNo == ref {
			return v.TransactionID
		}
	}
	t.Fatalf("reference %s not found", ref)
	return ""
}

func TestListFiltersByTypeAccountBranchSearch(t *testing.T) {
	svc, _ := newTestService(t)

	a := validCreate("INV-401")
	a.Notes = "setoran harian"
	b := validCreate("INV-402")
	b.TransactionType = "Pengeluaran"
	b.AccountID = "coa-2"
	b.BranchID = "branch-2"
	for _, in := range []CreateInput{a, b} {
		if _, err := svc.Create(Omzet, in); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	views, err := svc.List(Omzet, ListFilter{Type: "Pengeluaran"})
	if err != nil || len(views) != 1 || views[0].ReferenceNo != "INV-402" {
		t.Fatalf("type filter: views=%+v err=%v", views, err)
	}
	views, err = svc.List(Omzet, ListFilter{AccountID: "coa-2"})
	if err != nil || len(views) != 1 || views[0].ReferenceNo != "INV-402" {
		t.Fatalf("account filter: views=%+v err=%v", views, err)
	}
	views, err = svc.List(Omzet, ListFilter{BranchID: "branch-2"})
	if err != nil || len(views) != 1 || views[0].ReferenceNo != "INV-402" {
		t.Fatalf("branch filter: views=%+v err=%v", views, err)
	}
	views, err = svc.List(Omzet, ListFilter{Search: "SETORAN"})
	if err != nil || len(views) != 1 || views[0].ReferenceNo != "INV-401" {
		t.Fatalf("search filter: views=%+v err=%v", views, err)
	}
	views, err = svc.List(Omzet, ListFilter{Search: "bandung"})
	if err != nil || len(views) != 1 || views[0].ReferenceNo != "INV-402" {
		t.Fatalf("branch-name search: views=%+v err=%v", views, err)
	}
}

func TestUpdateAppliesOnlyProvidedFields(t *testing.T) {
	svc, _ := newTestService(t)

	view, err := svc.Create(Omzet, validCreate("INV-501"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	notes := "updated notes"
	updated, err := svc.Update(Omzet, view.TransactionID, UpdateInput{Notes: &notes})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Notes != "updated notes" {
		t.Fatalf("notes = %q", updated.Notes)
	}
	if updated.ReferenceNo != "INV-501" || updated.TransactionDate != "25/12/2024" || updated.TotalAmount != 150000 {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
	if !updated.UpdatedAt.After(view.UpdatedAt) && !updated.UpdatedAt.Equal(view.UpdatedAt) {
		t.Fatal("updated_at not refreshed")
	}

	// re-pointing the account refreshes the snapshot
	accountID := "coa-2"
	updated, err = svc.Update(Omzet, view.TransactionID, UpdateInput{AccountID: &accountID})
	if err != nil {
		t.Fatalf("account update failed: %v", err)
	}
	if updated.AccountCode != "5-10001" || updated.AccountName != "Bahan Baku" {
		t.Fatalf("account snapshot not refreshed: %+v", updated)
	}

	// keeping the same reference number is not a conflict
	ref := "INV-501"
	if _, err := svc.Update(Omzet, view.TransactionID, UpdateInput{ReferenceNo: &ref}); err != nil {
		t.Fatalf("same-reference update failed: %v", err)
	}
}

func TestUpdateReplacesFilesWholesale(t *testing.T) {
	svc, _ := newTestService(t)

	in := validCreate("INV-502")
	in.Files = []FileInput{{Filename: "a.pdf", OriginalName: "invoice-a.pdf"}}
	view, err := svc.Create(Omzet, in)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if len(view.Files) != 1 {
		t.Fatalf("got %d files, want 1", len(view.Files))
	}

	replacement := []FileInput{
		{Filename: "b.pdf", OriginalName: "invoice-b.pdf"},
		{Filename: "c.pdf", OriginalName: "invoice-c.pdf"},
	}
	updated, err := svc.Update(Omzet, view.TransactionID, UpdateInput{Files: &replacement})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if len(updated.Files) != 2 || updated.Files[0].Filename != "b.pdf" {
		t.Fatalf("files not replaced: %+v", updated.Files)
	}
}

func TestFileAppendAndRemove(t *testing.T) {
	svc, _ := newTestService(t)

	view, err := svc.Create(Omzet, validCreate("INV-601"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err = svc.AddFiles(Omzet, view.TransactionID, nil)
	wantStatus(t, err, http.StatusBadRequest)

	updated, err := svc.AddFiles(Omzet, view.TransactionID, []FileInput{
		{Filename: "first.jpg", OriginalName: "receipt-1.jpg", Size: 1024, MimeType: "image/jpeg"},
		{Filename: "second.jpg", OriginalName: "receipt-2.jpg"},
	})
	if err != nil {
		t.Fatalf("add files failed: %v", err)
	}
	if len(updated.Files) != 2 {
		t.Fatalf("got %d files, want 2", len(updated.Files))
	}
	if updated.Files[0].ID == updated.Files[1].ID {
		t.Fatal("file ids must be unique")
	}
	if updated.Files[1].MimeType != "application/octet-stream" {
		t.Fatalf("mime default = %q", updated.Files[1].MimeType)
	}

	if err := svc.RemoveFile(Omzet, view.TransactionID, updated.Files[0].ID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	after, err := svc.Get(Omzet, view.TransactionID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(after.Files) != 1 || after.Files[0].Filename != "second.jpg" {
		t.Fatalf("wrong file left: %+v", after.Files)
	}

	err = svc.RemoveFile(Omzet, view.TransactionID, "missing-file")
	wantStatus(t, err, http.StatusNotFound)
}

func TestFileValidationRejectsIncompleteEntry(t *testing.T) {
	svc, _ := newTestService(t)

	in := validCreate("INV-602")
	in.Files = []FileInput{{Filename: "only-name.pdf"}}
	_, err := svc.Create(Omzet, in)
	le := wantStatus(t, err, http.StatusBadRequest)
	if le.Err != "Invalid file entry" {
		t.Fatalf("err = %q", le.Err)
	}

	// nothing was appended
	views, err := svc.List(Omzet, ListFilter{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(views) != 0 {
		t.Fatalf("store mutated on failed create: %+v", views)
	}
}
