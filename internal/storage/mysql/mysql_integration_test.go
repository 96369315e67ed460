//go:build integration || !unit

package mysql_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"staybook/internal/domain"
	mysqlrepo "staybook/internal/storage/mysql"
)

func pstr(s string) *string { return &s }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustRange(t *testing.T, in, out time.Time) domain.DateRange {
	t.Helper()
	dr, err := domain.NewDateRange(in, out)
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	return dr
}

func mustEnv(t *testing.T, k string) string {
	t.Helper()
	v := os.Getenv(k)
	if v == "" {
		t.Fatalf("%s not set; export it (e.g. MIGRATIONS_DIR=/path/to/sql)", k)
	}
	return v
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := mustEnv(t, "MIGRATIONS_DIR")

	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		t.Fatalf("MIGRATIONS_DIR=%s is not a directory or missing", dir)
	}

	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)

	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

func startMySQL(t *testing.T) *sql.DB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}

	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=staybook",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:%s@tcp(127.0.0.1:%s)/%s?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		"root", hostPort, "staybook")

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)
	return db
}

func TestRepo_MySQL_BookingsAndCatalog(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	// Catalog seed: bookings carry FKs to rooms and customers.
	if err := repo.UpsertHotel(ctx, domain.Hotel{
		ID: "h1", Name: "Harbor View", City: "Lisbon", Country: "PT", StarRating: 4,
	}); err != nil {
		t.Fatalf("UpsertHotel: %v", err)
	}
	if err := repo.UpsertRoom(ctx, domain.Room{
		ID: "r1", HotelID: "h1", RoomNumber: "101",
		RoomType: domain.RoomDeluxe, PriceCents: 15000, Capacity: 2,
	}); err != nil {
		t.Fatalf("UpsertRoom: %v", err)
	}
	if err := repo.UpsertCustomer(ctx, domain.Customer{
		ID: "c1", FirstName: "Ana", LastName: "Silva", Email: "ana@example.com",
	}); err != nil {
		t.Fatalf("UpsertCustomer: %v", err)
	}

	// Upsert is idempotent and applies updates.
	if err := repo.UpsertRoom(ctx, domain.Room{
		ID: "r1", HotelID: "h1", RoomNumber: "101",
		RoomType: domain.RoomDeluxe, PriceCents: 16000, Capacity: 2,
	}); err != nil {
		t.Fatalf("UpsertRoom again: %v", err)
	}
	rm, err := repo.GetRoom(ctx, "r1")
	if err != nil {
		t.Fatalf("GetRoom: %v", err)
	}
	if rm.PriceCents != 16000 {
		t.Fatalf("room price not updated: %+v", rm)
	}

	b := &domain.Booking{
		ID:              "b1",
		RoomID:          "r1",
		CustomerID:      "c1",
		Range:           mustRange(t, date(2026, time.June, 1), date(2026, time.June, 4)),
		Guests:          2,
		TotalCents:      48000,
		Status:          domain.StatusConfirmed,
		SpecialRequests: pstr("late check-in"),
		CreatedAt:       time.Now().UTC().Truncate(time.Second),
	}
	if err := repo.Insert(ctx, b); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	got, err := repo.Get(ctx, "b1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != domain.StatusConfirmed || got.TotalCents != 48000 ||
		got.SpecialRequests == nil || *got.SpecialRequests != "late check-in" {
		t.Fatalf("unexpected booking: %+v", got)
	}
	if !got.Range.CheckIn.Equal(date(2026, time.June, 1)) || !got.Range.CheckOut.Equal(date(2026, time.June, 4)) {
		t.Fatalf("unexpected range: %s", got.Range)
	}

	if _, err := repo.Get(ctx, "ghost"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// Overlap query uses half-open semantics: checkout day abuts freely.
	hits, err := repo.FindOverlapping(ctx, "r1", mustRange(t, date(2026, time.June, 3), date(2026, time.June, 5)))
	if err != nil {
		t.Fatalf("FindOverlapping: %v", err)
	}
	if len(hits) != 1 || hits[0].ID != "b1" {
		t.Fatalf("expected overlap with b1, got %+v", hits)
	}
	hits, err = repo.FindOverlapping(ctx, "r1", mustRange(t, date(2026, time.June, 4), date(2026, time.June, 6)))
	if err != nil {
		t.Fatalf("FindOverlapping adjacent: %v", err)
	}
	if len(hits) != 0 {
		t.Fatalf("adjacent range must not overlap, got %+v", hits)
	}

	holds, err := repo.ListActiveHolds(ctx)
	if err != nil {
		t.Fatalf("ListActiveHolds: %v", err)
	}
	if len(holds) != 1 || holds[0].BookingID != "b1" || holds[0].RoomID != "r1" {
		t.Fatalf("unexpected holds: %+v", holds)
	}

	up, err := repo.FindUpcoming(ctx, "c1", date(2026, time.January, 1))
	if err != nil {
		t.Fatalf("FindUpcoming: %v", err)
	}
	if len(up) != 1 || up[0].ID != "b1" {
		t.Fatalf("unexpected upcoming: %+v", up)
	}
	up, err = repo.FindUpcoming(ctx, "c1", date(2026, time.June, 2))
	if err != nil {
		t.Fatalf("FindUpcoming after check-in: %v", err)
	}
	if len(up) != 0 {
		t.Fatalf("booking already begun must not be upcoming: %+v", up)
	}

	// Status update propagates and drops the booking from active queries.
	got.Status = domain.StatusCancelled
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("Update: %v", err)
	}
	holds, err = repo.ListActiveHolds(ctx)
	if err != nil {
		t.Fatalf("ListActiveHolds after cancel: %v", err)
	}
	if len(holds) != 0 {
		t.Fatalf("cancelled booking must hold nothing: %+v", holds)
	}

	if err := repo.Update(ctx, &domain.Booking{ID: "ghost", Status: domain.StatusCancelled}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on ghost update, got %v", err)
	}

	// Completable sweep input: re-seed a confirmed stay already checked out.
	past := &domain.Booking{
		ID:         "b2",
		RoomID:     "r1",
		CustomerID: "c1",
		Range:      mustRange(t, date(2026, time.January, 10), date(2026, time.January, 12)),
		Guests:     1,
		TotalCents: 32000,
		Status:     domain.StatusConfirmed,
		CreatedAt:  time.Now().UTC().Truncate(time.Second),
	}
	if err := repo.Insert(ctx, past); err != nil {
		t.Fatalf("Insert past: %v", err)
	}
	due, err := repo.ListCompletable(ctx, date(2026, time.February, 1))
	if err != nil {
		t.Fatalf("ListCompletable: %v", err)
	}
	if len(due) != 1 || due[0].ID != "b2" {
		t.Fatalf("unexpected completable set: %+v", due)
	}

	all, err := repo.FindByCustomer(ctx, "c1")
	if err != nil {
		t.Fatalf("FindByCustomer: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected both bookings in history, got %+v", all)
	}
}
