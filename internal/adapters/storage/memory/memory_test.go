package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Trinidad006/CownectWeb-sub000/internal/domain/animals"
	"github.com/Trinidad006/CownectWeb-sub000/internal/domain/records"
)

func TestAnimalRepo_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewAnimalRepo()
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	a := animals.Animal{ID: "a1", OwnerID: "u1", IdentificationNumber: "MEX-123456-00001", CreatedAt: t0}
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Create(ctx, a); err == nil {
		t.Fatalf("expected duplicate id error")
	}

	got, err := repo.FindByIdentification(ctx, "u1", "MEX-123456-00001")
	if err != nil || got.ID != "a1" {
		t.Fatalf("FindByIdentification: %v %+v", err, got)
	}
	if _, err := repo.FindByIdentification(ctx, "u2", "MEX-123456-00001"); !errors.Is(err, animals.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for other owner, got %v", err)
	}

	a.ForSale = true
	a.SaleStatus = animals.SaleStatusForSale
	if err := repo.UpdateSale(ctx, a, ""); err != nil {
		t.Fatalf("UpdateSale: %v", err)
	}
	if err := repo.UpdateSale(ctx, a, ""); !errors.Is(err, animals.ErrSaleConflict) {
		t.Fatalf("expected ErrSaleConflict on stale status, got %v", err)
	}
	listed, _ := repo.ListForSale(ctx)
	if len(listed) != 1 {
		t.Fatalf("expected 1 listed, got %d", len(listed))
	}

	if err := repo.Delete(ctx, "a1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, "a1"); !errors.Is(err, animals.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := repo.UpdateSale(ctx, a, animals.SaleStatusForSale); !errors.Is(err, animals.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on update, got %v", err)
	}
}

func TestAnimalRepo_ListByOwnerOrdered(t *testing.T) {
	ctx := context.Background()
	repo := NewAnimalRepo()
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	_ = repo.Create(ctx, animals.Animal{ID: "b", OwnerID: "u1", CreatedAt: t0.Add(time.Hour)})
	_ = repo.Create(ctx, animals.Animal{ID: "a", OwnerID: "u1", CreatedAt: t0})
	_ = repo.Create(ctx, animals.Animal{ID: "c", OwnerID: "u2", CreatedAt: t0})

	out, err := repo.ListByOwner(ctx, "u1")
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(out) != 2 || out[0].ID != "a" || out[1].ID != "b" {
		t.Fatalf("unexpected list: %+v", out)
	}
}

func TestRecordRepo_NewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewRecordRepo()
	d := func(day int) time.Time { return time.Date(2026, 2, day, 0, 0, 0, 0, time.UTC) }

	_ = repo.CreateVaccination(ctx, records.Vaccination{ID: "v1", AnimalID: "a1", OwnerID: "u1", ApplicationDate: d(1)})
	_ = repo.CreateVaccination(ctx, records.Vaccination{ID: "v2", AnimalID: "a1", OwnerID: "u1", ApplicationDate: d(15)})
	_ = repo.CreateVaccination(ctx, records.Vaccination{ID: "v3", AnimalID: "a2", OwnerID: "u2", ApplicationDate: d(9)})
	if err := repo.CreateVaccination(ctx, records.Vaccination{ID: "v1"}); err == nil {
		t.Fatalf("expected duplicate id error")
	}

	vs, _ := repo.ListVaccinationsByAnimal(ctx, "a1")
	if len(vs) != 2 || vs[0].ID != "v2" {
		t.Fatalf("unexpected vaccinations: %+v", vs)
	}

	_ = repo.CreateWeight(ctx, records.Weight{ID: "w1", AnimalID: "a1", OwnerID: "u1", Weight: 200, RecordedDate: d(2)})
	_ = repo.CreateWeight(ctx, records.Weight{ID: "w2", AnimalID: "a1", OwnerID: "u1", Weight: 230, RecordedDate: d(20)})
	ws, _ := repo.ListWeightsByOwner(ctx, "u1")
	if len(ws) != 2 || ws[0].ID != "w2" {
		t.Fatalf("unexpected weights: %+v", ws)
	}
}

// slowReads simula la latencia de una base real entre la lectura y la escritura.
type slowReads struct {
	animals.Repository
}

func (r slowReads) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	a, err := r.Repository.GetByID(ctx, id)
	time.Sleep(time.Millisecond)
	return a, err
}

func TestAnimalRepo_ConcurrentReserveSingleWinner(t *testing.T) {
	ctx := context.Background()
	svc := animals.NewService(slowReads{NewAnimalRepo()})

	a, err := svc.Create(ctx, "seller", animals.CreateInput{Sex: "H", Stage: "Vaca seca"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.ListForSale(ctx, a.ID, "seller", decimal.NewFromInt(15000)); err != nil {
		t.Fatalf("ListForSale: %v", err)
	}

	const buyers = 32
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		winners []string
		others  []error
	)
	for i := 0; i < buyers; i++ {
		buyer := "buyer-" + string(rune('a'+i))
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Reserve(ctx, a.ID, buyer)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				winners = append(winners, buyer)
				return
			}
			others = append(others, err)
		}()
	}
	wg.Wait()

	if len(winners) != 1 {
		t.Fatalf("expected exactly one reservation, got %d: %v", len(winners), winners)
	}
	for _, err := range others {
		if !errors.Is(err, animals.ErrSaleInProcess) {
			t.Fatalf("expected ErrSaleInProcess for losers, got %v", err)
		}
	}

	got, err := svc.GetByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.SaleStatus != animals.SaleStatusInProcess || got.BuyerID != winners[0] {
		t.Fatalf("stored reservation does not match winner %s: %+v", winners[0], got)
	}

	// el ganador confirma; un segundo intento ya no encuentra la venta abierta
	if _, err := svc.ConfirmPurchase(ctx, a.ID, winners[0]); err != nil {
		t.Fatalf("ConfirmPurchase: %v", err)
	}
	if _, err := svc.ConfirmPurchase(ctx, a.ID, winners[0]); !errors.Is(err, animals.ErrBadState) {
		t.Fatalf("expected ErrBadState confirming twice, got %v", err)
	}
}
