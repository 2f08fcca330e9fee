package audit_test

import (
	"context"
	"testing"

	"github.com/thedevarpan/dot-developer/internal/domain/entity"
	"github.com/thedevarpan/dot-developer/internal/repository"
	"github.com/thedevarpan/dot-developer/internal/repository/repotest"
	auditUC "github.com/thedevarpan/dot-developer/internal/usecase/audit"
)

func newService() (*auditUC.Service, *repotest.UserStore, *repotest.RepairStore) {
	users := repotest.NewUserStore()
	repairs := repotest.NewRepairStore()
	return &auditUC.Service{Users: users, Repairs: repairs}, users, repairs
}

/* ───────── 1. 修復レコードの解決 ───────── */

func TestService_ResolvePending_recomputesOwner(t *testing.T) {
	svc, users, repairs := newService()

	// 保存値はずれている、本来の合計は 3/40/7
	u := users.Seed(&entity.User{Name: "Ada", Username: "ada-1", BlogPublished: 2, TotalVisits: 39, TotalReactions: 7})
	users.SetComputed(u.ID, repotest.Computed{Published: 3, Visits: 40, Reactions: 7})
	if err := repairs.Create(context.Background(), &repository.CounterRepair{Op: "record-visit", BlogID: 5, UserID: u.ID}); err != nil {
		t.Fatalf("seed repair: %v", err)
	}

	n, err := svc.ResolvePending(context.Background(), 10)
	if err != nil {
		t.Fatalf("ResolvePending err=%v", err)
	}
	if n != 1 {
		t.Fatalf("want 1 resolved, got %d", n)
	}

	got := users.Data[u.ID]
	if got.BlogPublished != 3 || got.TotalVisits != 40 || got.TotalReactions != 7 {
		t.Fatalf("aggregates not recomputed: %+v", got)
	}
	if repairs.Data[0].ResolvedAt == nil {
		t.Fatalf("record must be marked resolved")
	}
}

func TestService_ResolvePending_idempotent(t *testing.T) {
	svc, users, repairs := newService()

	u := users.Seed(&entity.User{Name: "Ada", Username: "ada-1", TotalVisits: 1})
	users.SetComputed(u.ID, repotest.Computed{Visits: 5})
	for i := 0; i < 2; i++ {
		if err := repairs.Create(context.Background(), &repository.CounterRepair{Op: "record-visit", UserID: u.ID}); err != nil {
			t.Fatalf("seed repair: %v", err)
		}
	}

	// 同じオーナーのレコードが複数あっても再計算は同じ値を書くだけ
	n, err := svc.ResolvePending(context.Background(), 10)
	if err != nil {
		t.Fatalf("ResolvePending err=%v", err)
	}
	if n != 2 {
		t.Fatalf("want 2 resolved, got %d", n)
	}
	if users.Data[u.ID].TotalVisits != 5 {
		t.Fatalf("want visits 5, got %d", users.Data[u.ID].TotalVisits)
	}

	// 二回目の実行では未解決レコードは残っていない
	n, err = svc.ResolvePending(context.Background(), 10)
	if err != nil || n != 0 {
		t.Fatalf("second pass: n=%d err=%v", n, err)
	}
}

func TestService_ResolvePending_deletedOwnerStillResolves(t *testing.T) {
	svc, _, repairs := newService()
	if err := repairs.Create(context.Background(), &repository.CounterRepair{Op: "delete-blog", UserID: 99}); err != nil {
		t.Fatalf("seed repair: %v", err)
	}

	n, err := svc.ResolvePending(context.Background(), 10)
	if err != nil {
		t.Fatalf("ResolvePending err=%v", err)
	}
	if n != 1 {
		t.Fatalf("record for a deleted owner must still resolve, got %d", n)
	}
}

/* ───────── 2. ドリフト走査 ───────── */

func TestService_SweepDrift(t *testing.T) {
	svc, users, _ := newService()

	clean := users.Seed(&entity.User{Name: "Ada", Username: "ada-1", BlogPublished: 1, TotalVisits: 10, TotalReactions: 2})
	users.SetComputed(clean.ID, repotest.Computed{Published: 1, Visits: 10, Reactions: 2})

	drifted := users.Seed(&entity.User{Name: "Bob", Username: "bob-1", BlogPublished: 4, TotalVisits: 100})
	users.SetComputed(drifted.ID, repotest.Computed{Published: 3, Visits: 90})

	n, err := svc.SweepDrift(context.Background())
	if err != nil {
		t.Fatalf("SweepDrift err=%v", err)
	}
	if n != 1 {
		t.Fatalf("want 1 corrected, got %d", n)
	}
	got := users.Data[drifted.ID]
	if got.BlogPublished != 3 || got.TotalVisits != 90 || got.TotalReactions != 0 {
		t.Fatalf("drifted user not corrected: %+v", got)
	}
	// ずれのないユーザーは書き換えない
	if users.Data[clean.ID].TotalVisits != 10 {
		t.Fatalf("clean user must stay untouched")
	}
}
