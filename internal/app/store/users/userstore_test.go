package userstore_test

import (
	"errors"
	"testing"

	userstore "github.com/dalemusser/bloodconnect/internal/app/store/users"
	"github.com/dalemusser/bloodconnect/internal/app/system/indexes"
	"github.com/dalemusser/bloodconnect/internal/app/system/paging"
	"github.com/dalemusser/bloodconnect/internal/domain/models"
	"github.com/dalemusser/bloodconnect/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_Create_Defaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{
		Name:         "  Rahim  ",
		Email:        " Rahim@Example.COM ",
		BloodGroup:   "o +",
		PasswordHash: "hash",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.Email != "rahim@example.com" {
		t.Errorf("Email: got %q", created.Email)
	}
	if created.Name != "Rahim" {
		t.Errorf("Name: got %q", created.Name)
	}
	if created.BloodGroup != "O+" {
		t.Errorf("BloodGroup: got %q", created.BloodGroup)
	}
	if created.Role != models.RoleDonor {
		t.Errorf("expected role donor, got %q", created.Role)
	}
	if created.Status != models.UserActive {
		t.Errorf("expected status active, got %q", created.Status)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestStore_Create_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}
	store := userstore.New(db)

	if _, err := store.Create(ctx, models.User{Name: "A", Email: "dup@example.com"}); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	_, err := store.Create(ctx, models.User{Name: "B", Email: "DUP@example.com"})
	if !errors.Is(err, userstore.ErrDuplicateEmail) {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestStore_Create_BadRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.User{Name: "X", Email: "x@example.com", Role: "owner"}); err == nil {
		t.Error("expected error for unknown role")
	}
}

func TestStore_GetByEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateUser(ctx, "Karim", "karim@example.com", models.RoleVolunteer)

	u, err := store.GetByEmail(ctx, "  KARIM@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if u.Name != "Karim" {
		t.Errorf("Name: got %q", u.Name)
	}
	if u.PasswordHash != "" {
		t.Error("password hash should be projected out")
	}

	if _, err := store.GetByEmail(ctx, "nobody@example.com"); err != mongo.ErrNoDocuments {
		t.Errorf("expected ErrNoDocuments, got %v", err)
	}
}

func TestStore_GetRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateUser(ctx, "Admin", "admin@example.com", models.RoleAdmin)

	role, err := store.GetRole(ctx, "admin@example.com")
	if err != nil {
		t.Fatalf("GetRole: %v", err)
	}
	if role != models.RoleAdmin {
		t.Errorf("role: got %q", role)
	}
	if _, err := store.GetRole(ctx, "missing@example.com"); err != mongo.ErrNoDocuments {
		t.Errorf("expected ErrNoDocuments, got %v", err)
	}
}

func TestStore_UpdateProfile(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateDonor(ctx, "Old Name", "donor@example.com", "A+", "Dhaka", "Mirpur")

	name := "New Name"
	district := "Khulna"
	if err := store.UpdateProfile(ctx, "donor@example.com", userstore.ProfileUpdate{Name: &name, District: &district}); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}

	u, err := store.GetByEmail(ctx, "donor@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if u.Name != "New Name" || u.District != "Khulna" {
		t.Errorf("unexpected profile: %+v", u)
	}
	if u.Upazila != "Mirpur" || u.BloodGroup != "A+" {
		t.Errorf("unsupplied fields changed: %+v", u)
	}
}

func TestStore_UpdateProfile_Errors(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.UpdateProfile(ctx, "a@example.com", userstore.ProfileUpdate{}); !errors.Is(err, userstore.ErrNoFields) {
		t.Errorf("expected ErrNoFields, got %v", err)
	}
	name := "x"
	if err := store.UpdateProfile(ctx, "missing@example.com", userstore.ProfileUpdate{Name: &name}); err != mongo.ErrNoDocuments {
		t.Errorf("expected ErrNoDocuments, got %v", err)
	}
}

func TestStore_SetStatusAndRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateUser(ctx, "Donor", "d@example.com", models.RoleDonor)

	if err := store.SetStatus(ctx, "d@example.com", models.UserBlocked); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if err := store.SetRole(ctx, "d@example.com", models.RoleVolunteer); err != nil {
		t.Fatalf("SetRole: %v", err)
	}
	u, _ := store.GetByEmail(ctx, "d@example.com")
	if u.Status != models.UserBlocked || u.Role != models.RoleVolunteer {
		t.Errorf("got status=%q role=%q", u.Status, u.Role)
	}

	if err := store.SetStatus(ctx, "d@example.com", "disabled"); err == nil {
		t.Error("expected error for invalid status")
	}
	if err := store.SetRole(ctx, "missing@example.com", models.RoleAdmin); err != mongo.ErrNoDocuments {
		t.Errorf("expected ErrNoDocuments, got %v", err)
	}
}

func TestStore_List(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateUser(ctx, "One", "one@example.com", models.RoleDonor)
	fixtures.CreateUser(ctx, "Two", "two@example.com", models.RoleDonor)
	fixtures.CreateBlockedUser(ctx, "Three", "three@example.com")

	users, total, err := store.List(ctx, "", paging.New(1, 2))
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 3 {
		t.Errorf("total: got %d, want 3", total)
	}
	if len(users) != 2 {
		t.Errorf("page size: got %d, want 2", len(users))
	}

	blocked, total, err := store.List(ctx, models.UserBlocked, paging.Default())
	if err != nil {
		t.Fatalf("List blocked: %v", err)
	}
	if total != 1 || len(blocked) != 1 || blocked[0].Email != "three@example.com" {
		t.Errorf("unexpected blocked list: total=%d %+v", total, blocked)
	}
}

func TestStore_SearchDonors(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateDonor(ctx, "Zara", "zara@example.com", "A+", "Dhaka", "Mirpur")
	fixtures.CreateDonor(ctx, "Amin", "amin@example.com", "A+", "Dhaka", "Gulshan")
	fixtures.CreateDonor(ctx, "Bela", "bela@example.com", "B+", "Dhaka", "Mirpur")
	fixtures.CreateUser(ctx, "Vol", "vol@example.com", models.RoleVolunteer)
	fixtures.CreateBlockedUser(ctx, "Blocked", "blocked@example.com")

	donors, err := store.SearchDonors(ctx, userstore.DonorFilter{BloodGroup: "a+", District: "Dhaka"})
	if err != nil {
		t.Fatalf("SearchDonors: %v", err)
	}
	if len(donors) != 2 {
		t.Fatalf("expected 2 donors, got %d", len(donors))
	}
	if donors[0].Name != "Amin" || donors[1].Name != "Zara" {
		t.Errorf("expected name order Amin, Zara; got %s, %s", donors[0].Name, donors[1].Name)
	}

	all, err := store.SearchDonors(ctx, userstore.DonorFilter{})
	if err != nil {
		t.Fatalf("SearchDonors all: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 active donors, got %d", len(all))
	}
}
