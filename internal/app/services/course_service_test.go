package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaanaktas/campushub/internal/app/models"
	"github.com/kaanaktas/campushub/internal/app/models/dto"
	"github.com/kaanaktas/campushub/internal/pkg/apperrors"
)

// fakeCourseStore keeps courses in memory and enforces the unique course
// code the real table's constraint provides.
type fakeCourseStore struct {
	nextID    int64
	byID      map[int64]*models.Course
	byCode    map[string]int64
	members   map[int64][]int64
	teachers  map[int64][]int64
	resources map[int64][]*models.CourseResource
}

func newFakeCourseStore() *fakeCourseStore {
	return &fakeCourseStore{
		byID:      map[int64]*models.Course{},
		byCode:    map[string]int64{},
		members:   map[int64][]int64{},
		teachers:  map[int64][]int64{},
		resources: map[int64][]*models.CourseResource{},
	}
}

func (f *fakeCourseStore) Create(_ context.Context, c *models.Course) error {
	if _, exists := f.byCode[c.Code]; exists {
		return apperrors.ErrCourseCodeExists
	}
	f.nextID++
	c.ID = f.nextID
	f.byID[c.ID] = c
	f.byCode[c.Code] = c.ID
	return nil
}

func (f *fakeCourseStore) GetByID(_ context.Context, id int64) (*models.Course, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	return c, nil
}

func (f *fakeCourseStore) GetAll(_ context.Context, _ uint64, _ int) ([]*models.Course, int64, error) {
	out := make([]*models.Course, 0, len(f.byID))
	for _, c := range f.byID {
		out = append(out, c)
	}
	return out, int64(len(out)), nil
}

func (f *fakeCourseStore) Update(_ context.Context, c *models.Course) error {
	if _, ok := f.byID[c.ID]; !ok {
		return apperrors.ErrCourseNotFound
	}
	f.byID[c.ID] = c
	return nil
}

func (f *fakeCourseStore) Delete(_ context.Context, id int64) error {
	c, ok := f.byID[id]
	if !ok {
		return apperrors.ErrCourseNotFound
	}
	delete(f.byCode, c.Code)
	delete(f.byID, id)
	return nil
}

func (f *fakeCourseStore) AddStudent(_ context.Context, courseID, userID int64) error {
	f.members[courseID] = append(f.members[courseID], userID)
	return nil
}

func (f *fakeCourseStore) RemoveStudent(_ context.Context, courseID, userID int64) error {
	kept := f.members[courseID][:0]
	for _, id := range f.members[courseID] {
		if id != userID {
			kept = append(kept, id)
		}
	}
	f.members[courseID] = kept
	return nil
}

func (f *fakeCourseStore) AddFaculty(_ context.Context, courseID, userID int64) error {
	f.teachers[courseID] = append(f.teachers[courseID], userID)
	return nil
}

func (f *fakeCourseStore) ListStudents(_ context.Context, courseID int64) ([]*models.User, error) {
	out := make([]*models.User, 0, len(f.members[courseID]))
	for _, id := range f.members[courseID] {
		out = append(out, &models.User{ID: id})
	}
	return out, nil
}

func (f *fakeCourseStore) ListFaculty(_ context.Context, courseID int64) ([]*models.User, error) {
	out := make([]*models.User, 0, len(f.teachers[courseID]))
	for _, id := range f.teachers[courseID] {
		out = append(out, &models.User{ID: id})
	}
	return out, nil
}

func (f *fakeCourseStore) ListByFaculty(_ context.Context, userID int64) ([]*models.Course, error) {
	var out []*models.Course
	for courseID, ids := range f.teachers {
		for _, id := range ids {
			if id == userID {
				out = append(out, f.byID[courseID])
			}
		}
	}
	return out, nil
}

func (f *fakeCourseStore) IsFaculty(_ context.Context, courseID, userID int64) (bool, error) {
	for _, id := range f.teachers[courseID] {
		if id == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCourseStore) AddResource(_ context.Context, r *models.CourseResource) error {
	f.resources[r.CourseID] = append(f.resources[r.CourseID], r)
	return nil
}

func (f *fakeCourseStore) ListResources(_ context.Context, courseID int64) ([]*models.CourseResource, error) {
	return f.resources[courseID], nil
}

type fakeUserDirectory struct {
	users map[int64]*models.User
}

func (f *fakeUserDirectory) GetByID(_ context.Context, id int64) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

func courseFixture() (*CourseService, *fakeCourseStore) {
	store := newFakeCourseStore()
	dir := &fakeUserDirectory{users: map[int64]*models.User{
		1:  {ID: 1, Name: "Asha", Email: "asha@campus.edu", RoleType: models.RoleStudent},
		10: {ID: 10, Name: "Prof. Rao", Email: "rao@campus.edu", RoleType: models.RoleFaculty},
	}}
	return NewCourseService(store, dir), store
}

func TestCreateCourseDuplicateCode(t *testing.T) {
	svc, store := courseFixture()
	ctx := context.Background()

	first, err := svc.Create(ctx, &dto.CreateCourseRequest{Code: "CS101", Name: "Intro to CS"})
	require.NoError(t, err)
	require.NotZero(t, first.ID)

	_, err = svc.Create(ctx, &dto.CreateCourseRequest{Code: "CS101", Name: "Intro to CS, again"})
	assert.ErrorIs(t, err, apperrors.ErrCourseCodeExists)

	// The losing create must not leave a second row behind.
	assert.Len(t, store.byID, 1)
	assert.Equal(t, "Intro to CS", store.byID[first.ID].Name)
}

func TestCreateCourseDistinctCodes(t *testing.T) {
	svc, store := courseFixture()
	ctx := context.Background()

	_, err := svc.Create(ctx, &dto.CreateCourseRequest{Code: "CS101", Name: "Intro to CS"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &dto.CreateCourseRequest{Code: "CS102", Name: "Data Structures"})
	require.NoError(t, err)

	assert.Len(t, store.byID, 2)
}

func TestEnrollRejectsNonStudent(t *testing.T) {
	svc, store := courseFixture()
	ctx := context.Background()

	course, err := svc.Create(ctx, &dto.CreateCourseRequest{Code: "CS101", Name: "Intro to CS"})
	require.NoError(t, err)

	err = svc.EnrollStudent(ctx, course.ID, 10)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	assert.Empty(t, store.members[course.ID])

	require.NoError(t, svc.EnrollStudent(ctx, course.ID, 1))
	assert.Equal(t, []int64{1}, store.members[course.ID])
}

func TestListStudentsUnknownCourse(t *testing.T) {
	svc, _ := courseFixture()

	_, err := svc.ListStudents(context.Background(), 404)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}
