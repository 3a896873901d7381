package animals

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Animal

	createErr   error // si no es nil, Create falla
	rollbackErr error // si no es nil, UpdateSale falla al revertir una venta
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Animal{}}
}

func (r *testRepo) Create(ctx context.Context, a Animal) error {
	if r.createErr != nil {
		return r.createErr
	}
	if a.ID == "" {
		return errors.New("repo: id required")
	}
	if _, ok := r.byID[a.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) UpdateSale(ctx context.Context, a Animal, from SaleStatus) error {
	current, ok := r.byID[a.ID]
	if !ok {
		return ErrNotFound
	}
	if from == SaleStatusSold && r.rollbackErr != nil {
		return r.rollbackErr
	}
	if current.SaleStatus != from {
		return ErrSaleConflict
	}
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Animal, error) {
	a, ok := r.byID[id]
	if !ok {
		return Animal{}, ErrNotFound
	}
	return a, nil
}

func (r *testRepo) ListByOwner(ctx context.Context, ownerID string) ([]Animal, error) {
	out := make([]Animal, 0)
	for _, a := range r.byID {
		if a.OwnerID == ownerID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *testRepo) FindByIdentification(ctx context.Context, ownerID, identificationNumber string) (Animal, error) {
	for _, a := range r.byID {
		if a.OwnerID == ownerID && a.IdentificationNumber == identificationNumber {
			return a, nil
		}
	}
	return Animal{}, ErrNotFound
}

func (r *testRepo) ListForSale(ctx context.Context) ([]Animal, error) {
	out := make([]Animal, 0)
	for _, a := range r.byID {
		if a.SaleStatus == SaleStatusForSale {
			out = append(out, a)
		}
	}
	return out, nil
}

func newTestService(now time.Time) (*Service, *testRepo) {
	repo := newTestRepo()
	svc := NewService(repo)
	svc.now = func() time.Time { return now }
	return svc, repo
}

var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

// -------------------------
// Tests
// -------------------------

func TestService_Create_NormalizesAndDerivesDocuments(t *testing.T) {
	svc, _ := newTestService(testNow)

	a, err := svc.Create(context.Background(), "owner-1", CreateInput{
		Name:                 "  Lucera ",
		IdentificationNumber: " mex-123456-00001 ",
		Sex:                  "h",
		Stage:                "Vaca lechera",
		Documents: Documents{
			TransitPermit:       "guia",
			SaleInvoice:         "factura",
			MovementCertificate: "movilizacion",
			SanitaryCertificate: "zoosanitario",
			BrandPatent:         "fierro",
			Photo:               "foto",
		},
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if a.IdentificationNumber != "MEX-123456-00001" {
		t.Fatalf("expected normalized id number, got %q", a.IdentificationNumber)
	}
	if a.Name != "Lucera" || a.Sex != SexFemale {
		t.Fatalf("unexpected animal: %+v", a)
	}
	if !a.DocumentsComplete {
		t.Fatalf("expected documents complete")
	}
	if a.CreatedAt != testNow || a.UpdatedAt != testNow {
		t.Fatalf("expected timestamps = now")
	}
}

func TestService_Create_RejectsInvalidInput(t *testing.T) {
	svc, _ := newTestService(testNow)
	ctx := context.Background()

	if _, err := svc.Create(ctx, "", CreateInput{Sex: "M"}); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for missing owner, got %v", err)
	}
	if _, err := svc.Create(ctx, "owner-1", CreateInput{Sex: "X"}); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for bad sex, got %v", err)
	}

	future := testNow.Add(48 * time.Hour)
	_, err := svc.Create(ctx, "owner-1", CreateInput{
		Sex:                  "M",
		IdentificationNumber: "12-34",
		BirthDate:            &future,
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Problems) != 2 {
		t.Fatalf("expected 2 problems, got %d: %v", len(verr.Problems), verr)
	}
	if !errors.Is(err, ErrTagFormat) || !errors.Is(err, ErrFutureBirthDate) {
		t.Fatalf("expected both tag and birth date errors, got %v", err)
	}
}

func TestService_Create_IdentificationUniquePerOwner(t *testing.T) {
	svc, _ := newTestService(testNow)
	ctx := context.Background()

	in := CreateInput{Sex: "M", IdentificationNumber: "MEX-123456-00001"}
	if _, err := svc.Create(ctx, "owner-1", in); err != nil {
		t.Fatalf("Create #1 error: %v", err)
	}

	lower := in
	lower.IdentificationNumber = "mex-123456-00001"
	if _, err := svc.Create(ctx, "owner-1", lower); err != ErrDuplicateIdentification {
		t.Fatalf("expected ErrDuplicateIdentification, got %v", err)
	}

	// otro dueño sí puede usar el mismo arete
	if _, err := svc.Create(ctx, "owner-2", in); err != nil {
		t.Fatalf("Create for other owner error: %v", err)
	}
}

func TestService_Update_PatchesAndKeepsOwnIdentification(t *testing.T) {
	svc, _ := newTestService(testNow)
	ctx := context.Background()

	a, err := svc.Create(ctx, "owner-1", CreateInput{Sex: "M", IdentificationNumber: "MEX-123456-00001"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	later := testNow.Add(time.Hour)
	svc.now = func() time.Time { return later }

	name := "Tornado"
	same := "mex-123456-00001"
	stage := "Toro reproductor"
	photo := "foto.jpg"
	updated, err := svc.Update(ctx, a.ID, "owner-1", UpdateInput{
		Name:                 &name,
		IdentificationNumber: &same,
		Stage:                &stage,
		Documents:            DocumentsPatch{Photo: &photo},
	})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Name != "Tornado" || updated.Stage != StageToroReproductor || updated.Documents.Photo != "foto.jpg" {
		t.Fatalf("unexpected update: %+v", updated)
	}
	if updated.UpdatedAt != later {
		t.Fatalf("expected UpdatedAt to change")
	}

	if _, err := svc.Update(ctx, a.ID, "owner-2", UpdateInput{Name: &name}); err != ErrForbidden {
		t.Fatalf("expected ErrForbidden for foreign owner, got %v", err)
	}
}

func TestService_AssignMother(t *testing.T) {
	svc, _ := newTestService(testNow)
	ctx := context.Background()

	mother, _ := svc.Create(ctx, "owner-1", CreateInput{Sex: "H", Stage: "Vaca lechera"})
	bull, _ := svc.Create(ctx, "owner-1", CreateInput{Sex: "M", Stage: "Toro reproductor"})
	dead, _ := svc.Create(ctx, "owner-1", CreateInput{Sex: "H", Stage: "Muerto"})
	foreign, _ := svc.Create(ctx, "owner-2", CreateInput{Sex: "H", Stage: "Vaca seca"})
	calf, _ := svc.Create(ctx, "owner-1", CreateInput{Sex: "H", Stage: "Cría"})

	cases := []struct {
		name     string
		motherID string
		want     error
	}{
		{"none", "", ErrMotherRequired},
		{"male", bull.ID, ErrMotherNotFemale},
		{"dead", dead.ID, ErrMotherUnavailable},
		{"foreign herd", foreign.ID, ErrMotherRequired},
		{"missing", "nope", ErrMotherRequired},
		{"self", calf.ID, ErrInvalidInput},
	}
	for _, tc := range cases {
		if _, err := svc.AssignMother(ctx, calf.ID, "owner-1", tc.motherID); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}

	got, err := svc.AssignMother(ctx, calf.ID, "owner-1", mother.ID)
	if err != nil {
		t.Fatalf("AssignMother error: %v", err)
	}
	if got.MotherID != mother.ID {
		t.Fatalf("expected mother %s, got %s", mother.ID, got.MotherID)
	}

	// un adulto puede quedar sin madre
	if _, err := svc.AssignMother(ctx, bull.ID, "owner-1", ""); err != nil {
		t.Fatalf("expected no error clearing mother on adult, got %v", err)
	}
}

func TestService_Create_WithSoldMotherFails(t *testing.T) {
	svc, repo := newTestService(testNow)
	ctx := context.Background()

	mother, _ := svc.Create(ctx, "owner-1", CreateInput{Sex: "H", Stage: "Vaca lechera"})
	m := repo.byID[mother.ID]
	m.SaleStatus = SaleStatusSold
	repo.byID[mother.ID] = m

	_, err := svc.Create(ctx, "owner-1", CreateInput{Sex: "M", Stage: "Becerro", MotherID: mother.ID})
	if err != ErrMotherSold {
		t.Fatalf("expected ErrMotherSold, got %v", err)
	}
}

func TestService_MarketplaceFlow_ReserveConfirm(t *testing.T) {
	svc, repo := newTestService(testNow)
	ctx := context.Background()

	a, _ := svc.Create(ctx, "seller", CreateInput{Sex: "M", Stage: "Novillo", IdentificationNumber: "MEX-000001-00001"})

	if _, err := svc.Reserve(ctx, a.ID, "buyer"); err != ErrNotForSale {
		t.Fatalf("expected ErrNotForSale before listing, got %v", err)
	}
	if _, err := svc.ListForSale(ctx, a.ID, "seller", decimal.Zero); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for zero price, got %v", err)
	}

	listed, err := svc.ListForSale(ctx, a.ID, "seller", decimal.RequireFromString("18500.50"))
	if err != nil {
		t.Fatalf("ListForSale error: %v", err)
	}
	if !listed.ForSale || listed.SaleStatus != SaleStatusForSale || !listed.SalePrice.Valid {
		t.Fatalf("unexpected listing: %+v", listed)
	}

	market, _ := svc.Marketplace(ctx, "buyer")
	if len(market) != 1 {
		t.Fatalf("expected 1 animal in marketplace, got %d", len(market))
	}
	own, _ := svc.Marketplace(ctx, "seller")
	if len(own) != 0 {
		t.Fatalf("seller should not see own listing, got %d", len(own))
	}

	if _, err := svc.Reserve(ctx, a.ID, "seller"); err != ErrOwnAnimal {
		t.Fatalf("expected ErrOwnAnimal, got %v", err)
	}
	reserved, err := svc.Reserve(ctx, a.ID, "buyer")
	if err != nil {
		t.Fatalf("Reserve error: %v", err)
	}
	if reserved.SaleStatus != SaleStatusInProcess || reserved.BuyerID != "buyer" {
		t.Fatalf("unexpected reserve: %+v", reserved)
	}

	if _, err := svc.Reserve(ctx, a.ID, "other-buyer"); err != ErrSaleInProcess {
		t.Fatalf("expected ErrSaleInProcess on second reserve, got %v", err)
	}
	if _, err := svc.ListForSale(ctx, a.ID, "seller", decimal.NewFromInt(1)); err != ErrSaleInProcess {
		t.Fatalf("expected ErrSaleInProcess relisting, got %v", err)
	}
	if err := svc.Delete(ctx, a.ID, "seller"); err != ErrSaleInProcess {
		t.Fatalf("expected ErrSaleInProcess deleting, got %v", err)
	}
	if _, err := svc.ConfirmPurchase(ctx, a.ID, "other-buyer"); err != ErrForbidden {
		t.Fatalf("expected ErrForbidden for other buyer, got %v", err)
	}

	bought, err := svc.ConfirmPurchase(ctx, a.ID, "buyer")
	if err != nil {
		t.Fatalf("ConfirmPurchase error: %v", err)
	}
	if bought.OwnerID != "buyer" || bought.ID == a.ID || bought.SaleStatus != "" || bought.ForSale {
		t.Fatalf("unexpected buyer copy: %+v", bought)
	}
	if bought.IdentificationNumber != "MEX-000001-00001" {
		t.Fatalf("expected identification to travel with the animal")
	}

	seller := repo.byID[a.ID]
	if seller.SaleStatus != SaleStatusSold || seller.ForSale {
		t.Fatalf("expected seller record sold, got %+v", seller)
	}
	if _, err := svc.ListForSale(ctx, a.ID, "seller", decimal.NewFromInt(1)); err != ErrAlreadySold {
		t.Fatalf("expected ErrAlreadySold, got %v", err)
	}
}

func TestService_CancelAndWithdraw(t *testing.T) {
	svc, _ := newTestService(testNow)
	ctx := context.Background()

	a, _ := svc.Create(ctx, "seller", CreateInput{Sex: "H", Stage: "Vaca seca"})
	if _, err := svc.WithdrawFromSale(ctx, a.ID, "seller"); err != ErrNotForSale {
		t.Fatalf("expected ErrNotForSale, got %v", err)
	}

	_, _ = svc.ListForSale(ctx, a.ID, "seller", decimal.NewFromInt(9000))
	_, _ = svc.Reserve(ctx, a.ID, "buyer")

	if _, err := svc.CancelPurchase(ctx, a.ID, "stranger"); err != ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	back, err := svc.CancelPurchase(ctx, a.ID, "seller")
	if err != nil {
		t.Fatalf("CancelPurchase error: %v", err)
	}
	if back.SaleStatus != SaleStatusForSale || back.BuyerID != "" || !back.ForSale {
		t.Fatalf("unexpected state after cancel: %+v", back)
	}
	if _, err := svc.CancelPurchase(ctx, a.ID, "seller"); err != ErrBadState {
		t.Fatalf("expected ErrBadState cancelling twice, got %v", err)
	}

	withdrawn, err := svc.WithdrawFromSale(ctx, a.ID, "seller")
	if err != nil {
		t.Fatalf("WithdrawFromSale error: %v", err)
	}
	if withdrawn.ForSale || withdrawn.SaleStatus != "" || withdrawn.SalePrice.Valid {
		t.Fatalf("unexpected state after withdraw: %+v", withdrawn)
	}
}

func TestService_Update_BlockedWhileReservedOrSold(t *testing.T) {
	svc, _ := newTestService(testNow)
	ctx := context.Background()

	a, _ := svc.Create(ctx, "seller", CreateInput{Sex: "H", Stage: "Vaca lechera"})
	mother, _ := svc.Create(ctx, "seller", CreateInput{Sex: "H", Stage: "Vaca seca"})
	_, _ = svc.ListForSale(ctx, a.ID, "seller", decimal.NewFromInt(20000))
	_, _ = svc.Reserve(ctx, a.ID, "buyer")

	dead := "Muerto"
	if _, err := svc.Update(ctx, a.ID, "seller", UpdateInput{Stage: &dead}); err != ErrSaleInProcess {
		t.Fatalf("expected ErrSaleInProcess editing reserved animal, got %v", err)
	}
	if _, err := svc.AssignMother(ctx, a.ID, "seller", mother.ID); err != ErrSaleInProcess {
		t.Fatalf("expected ErrSaleInProcess assigning mother, got %v", err)
	}

	bought, err := svc.ConfirmPurchase(ctx, a.ID, "buyer")
	if err != nil {
		t.Fatalf("ConfirmPurchase error: %v", err)
	}
	if bought.Stage != StageVacaLechera {
		t.Fatalf("buyer copy should keep the reserved stage, got %q", bought.Stage)
	}
	if _, err := svc.Update(ctx, a.ID, "seller", UpdateInput{Stage: &dead}); err != ErrAlreadySold {
		t.Fatalf("expected ErrAlreadySold editing sold animal, got %v", err)
	}

	// la copia del comprador sí se edita
	name := "Lucera"
	if _, err := svc.Update(ctx, bought.ID, "buyer", UpdateInput{Name: &name}); err != nil {
		t.Fatalf("buyer edit error: %v", err)
	}
}

func TestService_ConfirmPurchase_RollsBackSellerRecord(t *testing.T) {
	svc, repo := newTestService(testNow)
	ctx := context.Background()

	a, _ := svc.Create(ctx, "seller", CreateInput{Sex: "M", Stage: "Novillo"})
	_, _ = svc.ListForSale(ctx, a.ID, "seller", decimal.NewFromInt(12000))
	_, _ = svc.Reserve(ctx, a.ID, "buyer")

	createErr := errors.New("insert failed")
	repo.createErr = createErr

	if _, err := svc.ConfirmPurchase(ctx, a.ID, "buyer"); !errors.Is(err, createErr) {
		t.Fatalf("expected create error, got %v", err)
	}
	if got := repo.byID[a.ID]; got.SaleStatus != SaleStatusInProcess || got.BuyerID != "buyer" || !got.ForSale {
		t.Fatalf("expected reservation restored, got %+v", got)
	}

	// si revertir también falla, ambos errores llegan al caller
	rollbackErr := errors.New("update failed")
	repo.rollbackErr = rollbackErr
	_, err := svc.ConfirmPurchase(ctx, a.ID, "buyer")
	if !errors.Is(err, createErr) || !errors.Is(err, rollbackErr) {
		t.Fatalf("expected joined create and rollback errors, got %v", err)
	}
	if got := repo.byID[a.ID]; got.SaleStatus != SaleStatusSold {
		t.Fatalf("expected seller record left sold when rollback fails, got %q", got.SaleStatus)
	}
}
