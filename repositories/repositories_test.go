package repositories

import (
	"MediCore/models"
	"MediCore/testsupport"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUser(t *testing.T, repo UserRepository, username string, role models.Role) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@x.com", Password: "hash", Role: role}
	require.NoError(t, repo.CreateUser(context.Background(), user))
	return user
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	db := testsupport.NewDB(t)
	c, _ := testsupport.NewRedis(t)
	repo := NewUserRepository(db, c)
	ctx := context.Background()

	newUser(t, repo, "alice", models.RolePatient)

	exists, err := repo.UsernameExists(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, exists)

	err = repo.CreateUser(ctx, &models.User{Username: "alice", Email: "other@x.com", Password: "hash", Role: models.RolePatient})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateValue))
}

func TestGetUserByIDCachesWithoutPassword(t *testing.T) {
	db := testsupport.NewDB(t)
	c, server := testsupport.NewRedis(t)
	repo := NewUserRepository(db, c)
	ctx := context.Background()

	alice := newUser(t, repo, "alice", models.RolePatient)

	got, err := repo.GetUserByID(ctx, alice.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "alice", got.Username)
	assert.Empty(t, got.Password)

	cached, err := server.Get(userCacheKey(alice.ID))
	require.NoError(t, err)
	assert.NotContains(t, cached, "hash")

	require.NoError(t, repo.UpdateUserProfile(ctx, alice.ID, "alice2", "alice2@x.com", ""))
	assert.False(t, server.Exists(userCacheKey(alice.ID)))

	got, err = repo.GetUserByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice2", got.Username)

	missing, err := repo.GetUserByID(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUpdateUserProfileKeepsPasswordWhenEmpty(t *testing.T) {
	db := testsupport.NewDB(t)
	c, _ := testsupport.NewRedis(t)
	repo := NewUserRepository(db, c)
	ctx := context.Background()

	alice := newUser(t, repo, "alice", models.RolePatient)
	newUser(t, repo, "bob", models.RolePatient)

	require.NoError(t, repo.UpdateUserProfile(ctx, alice.ID, "alice", "new@x.com", ""))
	stored, err := repo.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "hash", stored.Password)
	assert.Equal(t, "new@x.com", stored.Email)

	require.NoError(t, repo.UpdateUserProfile(ctx, alice.ID, "alice", "new@x.com", "rehash"))
	stored, err = repo.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "rehash", stored.Password)

	err = repo.UpdateUserProfile(ctx, alice.ID, "bob", "new@x.com", "")
	assert.True(t, errors.Is(err, ErrDuplicateValue))
}

func TestDoctorLifecycle(t *testing.T) {
	db := testsupport.NewDB(t)
	c, server := testsupport.NewRedis(t)
	doctors := NewDoctorRepository(db, c)
	ctx := context.Background()

	doctor := &models.User{Username: "house", Email: "house@x.com", Password: "hash"}
	require.NoError(t, doctors.Create(ctx, doctor, &models.DoctorDetail{Department: "Diagnostics", Experience: 12}))
	assert.Equal(t, models.RoleDoctor, doctor.Role)

	list, err := doctors.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].DoctorDetail)
	assert.Equal(t, "Diagnostics", list[0].DoctorDetail.Department)
	assert.True(t, server.Exists(doctorsCacheKey))

	require.NoError(t, doctors.Update(ctx, doctor.ID, "house", "house@x.com", "", models.DoctorDetail{Department: "Nephrology", Specialization: "Kidneys", Experience: 13}))
	assert.False(t, server.Exists(doctorsCacheKey))

	got, err := doctors.GetByID(ctx, doctor.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Nephrology", got.DoctorDetail.Department)
	assert.Equal(t, 13, got.DoctorDetail.Experience)
	assert.Equal(t, "hash", got.Password)

	require.NoError(t, doctors.Delete(ctx, doctor.ID))
	got, err = doctors.GetByID(ctx, doctor.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	var details int64
	require.NoError(t, db.Model(&models.DoctorDetail{}).Count(&details).Error)
	assert.Zero(t, details)

	assert.True(t, errors.Is(doctors.Delete(ctx, doctor.ID), gorm.ErrRecordNotFound))
}

func TestDoctorUpdateRecreatesMissingDetail(t *testing.T) {
	db := testsupport.NewDB(t)
	c, _ := testsupport.NewRedis(t)
	users := NewUserRepository(db, c)
	doctors := NewDoctorRepository(db, c)
	ctx := context.Background()

	doctor := newUser(t, users, "bare", models.RoleDoctor)
	require.NoError(t, doctors.Update(ctx, doctor.ID, "bare", "bare@x.com", "", models.DoctorDetail{Department: "ER"}))

	got, err := doctors.GetByID(ctx, doctor.ID)
	require.NoError(t, err)
	require.NotNil(t, got.DoctorDetail)
	assert.Equal(t, "ER", got.DoctorDetail.Department)
}

func TestDoctorCreateRollsBackOnDuplicate(t *testing.T) {
	db := testsupport.NewDB(t)
	c, _ := testsupport.NewRedis(t)
	users := NewUserRepository(db, c)
	doctors := NewDoctorRepository(db, c)
	ctx := context.Background()

	newUser(t, users, "house", models.RolePatient)
	err := doctors.Create(ctx, &models.User{Username: "house", Email: "dr@x.com", Password: "hash"}, &models.DoctorDetail{Department: "ER"})
	assert.True(t, errors.Is(err, ErrDuplicateValue))

	var details int64
	require.NoError(t, db.Model(&models.DoctorDetail{}).Count(&details).Error)
	assert.Zero(t, details)
}

func TestDeletePatientRemovesAppointments(t *testing.T) {
	db := testsupport.NewDB(t)
	c, _ := testsupport.NewRedis(t)
	users := NewUserRepository(db, c)
	patients := NewPatientRepository(db, c)
	appointments := NewAppointmentRepository(db)
	ctx := context.Background()

	alice := newUser(t, users, "alice", models.RolePatient)
	bob := newUser(t, users, "bob", models.RolePatient)
	doctor := newUser(t, users, "house", models.RoleDoctor)

	date := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, appointments.Create(ctx, &models.Appointment{PatientID: alice.ID, DoctorID: doctor.ID, Date: date}))
	require.NoError(t, appointments.Create(ctx, &models.Appointment{PatientID: bob.ID, DoctorID: doctor.ID, Date: date}))

	list, err := patients.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	require.NoError(t, patients.Delete(ctx, alice.ID))

	got, err := patients.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	remaining, err := appointments.ListByDoctor(ctx, doctor.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, bob.ID, remaining[0].PatientID)
	require.NotNil(t, remaining[0].Patient)
	assert.Equal(t, "bob", remaining[0].Patient.Username)

	// doctors are not patients
	assert.True(t, errors.Is(patients.Delete(ctx, doctor.ID), gorm.ErrRecordNotFound))
}

func TestAppointmentComplete(t *testing.T) {
	db := testsupport.NewDB(t)
	c, _ := testsupport.NewRedis(t)
	users := NewUserRepository(db, c)
	appointments := NewAppointmentRepository(db)
	ctx := context.Background()

	alice := newUser(t, users, "alice", models.RolePatient)
	doctor := newUser(t, users, "house", models.RoleDoctor)

	appt := &models.Appointment{PatientID: alice.ID, DoctorID: doctor.ID, Date: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, appointments.Create(ctx, appt))
	assert.Equal(t, models.StatusScheduled, appt.Status)

	require.NoError(t, appointments.Complete(ctx, appt.ID, "flu", "rest"))
	got, err := appointments.GetByID(ctx, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got.Status)
	require.NotNil(t, got.Diagnosis)
	assert.Equal(t, "flu", *got.Diagnosis)

	mine, err := appointments.ListByPatient(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "house", mine[0].Doctor.Username)

	assert.Error(t, appointments.Complete(ctx, 999, "x", "y"))
	assert.Error(t, appointments.Create(ctx, &models.Appointment{PatientID: alice.ID, DoctorID: doctor.ID, Status: "Cancelled"}))
}

func TestAvailabilitySeedAndToggle(t *testing.T) {
	db := testsupport.NewDB(t)
	repo := NewAvailabilityRepository(db)
	ctx := context.Background()

	seeded, err := repo.SeedIfAbsent(ctx, 7, models.DefaultWeeklySlots(7))
	require.NoError(t, err)
	assert.True(t, seeded)

	seeded, err = repo.SeedIfAbsent(ctx, 7, models.DefaultWeeklySlots(7))
	require.NoError(t, err)
	assert.False(t, seeded)

	slots, err := repo.ListByDoctor(ctx, 7)
	require.NoError(t, err)
	require.Len(t, slots, 35)
	assert.Equal(t, 0, slots[0].DayOfWeek)
	assert.Equal(t, "09:00", slots[0].StartTime)
	assert.Equal(t, 4, slots[34].DayOfWeek)
	assert.Equal(t, "16:00", slots[34].StartTime)

	require.NoError(t, repo.SetAvailable(ctx, slots[0].ID, false))
	got, err := repo.GetByID(ctx, slots[0].ID)
	require.NoError(t, err)
	assert.False(t, got.IsAvailable)

	missing, err := repo.GetByID(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestContactListRecent(t *testing.T) {
	db := testsupport.NewDB(t)
	repo := NewContactRepository(db)
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, &models.ContactMessage{Name: "A B", Email: "a@x.com", Subject: "old", Message: "m", DateSent: base}))
	require.NoError(t, repo.Create(ctx, &models.ContactMessage{Name: "C D", Email: "c@x.com", Subject: "new", Message: "m", DateSent: base.Add(time.Hour)}))

	messages, err := repo.ListRecent(ctx)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "new", messages[0].Subject)
	assert.Equal(t, "old", messages[1].Subject)
}
