package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uniplan/uniplan-api/internal/models"
	"github.com/uniplan/uniplan-api/internal/repository"
	appErrors "github.com/uniplan/uniplan-api/pkg/errors"
)

// fakeScheduleStore backs every repository interface the schedule service
// depends on with in-memory maps, so the same instance can serve both the
// pool-facing readers and the transaction bundle.
type fakeScheduleStore struct {
	mu          sync.Mutex
	schedules   map[string]models.Schedule
	assignments map[string]models.ScheduleAssignment
	offerings   map[string]models.CourseOffering
	slots       map[string]models.TimeSlot
	notes       []models.ReviewNote
	audits      []models.AuditLog
	findCount   int

	// existsDelay simulates a storage round-trip in the duplicate check so
	// concurrent create tests get a wide interleaving window.
	existsDelay time.Duration
}

func newFakeScheduleStore() *fakeScheduleStore {
	return &fakeScheduleStore{
		schedules:   make(map[string]models.Schedule),
		assignments: make(map[string]models.ScheduleAssignment),
		offerings:   make(map[string]models.CourseOffering),
		slots:       make(map[string]models.TimeSlot),
	}
}

func (f *fakeScheduleStore) List(ctx context.Context, filter models.ScheduleFilter) ([]models.Schedule, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Schedule
	for _, s := range f.schedules {
		out = append(out, s)
	}
	return out, len(out), nil
}

func (f *fakeScheduleStore) FindByID(ctx context.Context, id string) (*models.Schedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.findCount++
	if s, ok := f.schedules[id]; ok {
		return &s, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeScheduleStore) ExistsByTermAndDepartment(ctx context.Context, termID, departmentID string) (bool, error) {
	if f.existsDelay > 0 {
		time.Sleep(f.existsDelay)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.schedules {
		if s.TermID == termID && s.DepartmentID == departmentID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeScheduleStore) Create(ctx context.Context, schedule *models.Schedule) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if schedule.ID == "" {
		schedule.ID = uuid.NewString()
	}
	if schedule.Status == "" {
		schedule.Status = models.ScheduleStatusDraft
	}
	f.schedules[schedule.ID] = *schedule
	return nil
}

func (f *fakeScheduleStore) MarkSubmitted(ctx context.Context, id, submittedBy string, at time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.schedules[id]
	if !ok || s.Status != models.ScheduleStatusDraft {
		return false, nil
	}
	s.Status = models.ScheduleStatusPending
	s.SubmittedBy = submittedBy
	s.SubmittedAt = &at
	f.schedules[id] = s
	return true, nil
}

func (f *fakeScheduleStore) MarkEvaluated(ctx context.Context, id string, status models.ScheduleStatus, evaluatedBy string, at time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.schedules[id]
	if !ok || s.Status != models.ScheduleStatusPending {
		return false, nil
	}
	s.Status = status
	s.EvaluatedBy = &evaluatedBy
	s.EvaluatedAt = &at
	f.schedules[id] = s
	return true, nil
}

func (f *fakeScheduleStore) ListBySchedule(ctx context.Context, scheduleID string) ([]models.ScheduleAssignmentDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.ScheduleAssignmentDetail
	for _, a := range f.assignments {
		if a.ScheduleID == scheduleID {
			out = append(out, models.ScheduleAssignmentDetail{ScheduleAssignment: a})
		}
	}
	return out, nil
}

func (f *fakeScheduleStore) FindAssignmentByID(id string) (models.ScheduleAssignment, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.assignments[id]
	return a, ok
}

func (f *fakeScheduleStore) HasInstructorConflict(ctx context.Context, scheduleID, instructorID, timeSlotID, excludeAssignmentID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.assignments {
		if a.ScheduleID != scheduleID || a.TimeSlotID != timeSlotID || a.ID == excludeAssignmentID {
			continue
		}
		if offering, ok := f.offerings[a.CourseOfferingID]; ok && offering.InstructorID == instructorID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeScheduleStore) HasClassroomConflict(ctx context.Context, scheduleID, classroomID, timeSlotID, excludeAssignmentID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.assignments {
		if a.ScheduleID == scheduleID && a.TimeSlotID == timeSlotID && a.ClassroomID == classroomID && a.ID != excludeAssignmentID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeScheduleStore) CreateAssignment(ctx context.Context, assignment *models.ScheduleAssignment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if assignment.ID == "" {
		assignment.ID = uuid.NewString()
	}
	f.assignments[assignment.ID] = *assignment
	return nil
}

func (f *fakeScheduleStore) DeleteAssignment(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.assignments, id)
	return nil
}

func (f *fakeScheduleStore) FindOfferingByID(ctx context.Context, id string) (*models.CourseOffering, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if o, ok := f.offerings[id]; ok {
		return &o, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeScheduleStore) FindSlotByID(ctx context.Context, id string) (*models.TimeSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.slots[id]; ok {
		return &s, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeScheduleStore) ListNotesBySchedule(ctx context.Context, scheduleID string) ([]models.ReviewNote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.ReviewNote
	for _, n := range f.notes {
		if n.ScheduleID == scheduleID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeScheduleStore) CreateNote(ctx context.Context, note *models.ReviewNote) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if note.ID == "" {
		note.ID = uuid.NewString()
	}
	f.notes = append(f.notes, *note)
	return nil
}

func (f *fakeScheduleStore) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.audits = append(f.audits, *log)
	return nil
}

// Adapter views so one store satisfies the separately named interfaces.
type fakeAssignmentStore struct{ *fakeScheduleStore }

func (f fakeAssignmentStore) FindByID(ctx context.Context, id string) (*models.ScheduleAssignment, error) {
	if a, ok := f.FindAssignmentByID(id); ok {
		return &a, nil
	}
	return nil, sql.ErrNoRows
}

func (f fakeAssignmentStore) Create(ctx context.Context, assignment *models.ScheduleAssignment) error {
	return f.CreateAssignment(ctx, assignment)
}

func (f fakeAssignmentStore) Delete(ctx context.Context, id string) error {
	return f.DeleteAssignment(ctx, id)
}

type fakeOfferingStore struct{ *fakeScheduleStore }

func (f fakeOfferingStore) FindByID(ctx context.Context, id string) (*models.CourseOffering, error) {
	return f.FindOfferingByID(ctx, id)
}

type fakeSlotStore struct{ *fakeScheduleStore }

func (f fakeSlotStore) FindByID(ctx context.Context, id string) (*models.TimeSlot, error) {
	return f.FindSlotByID(ctx, id)
}

type fakeNoteStore struct{ *fakeScheduleStore }

func (f fakeNoteStore) ListBySchedule(ctx context.Context, scheduleID string) ([]models.ReviewNote, error) {
	return f.ListNotesBySchedule(ctx, scheduleID)
}

func (f fakeNoteStore) Create(ctx context.Context, note *models.ReviewNote) error {
	return f.CreateNote(ctx, note)
}

type fakeTxManager struct{ store *fakeScheduleStore }

func (m *fakeTxManager) WithTx(ctx context.Context, fn func(ctx context.Context, repos repository.TxRepositories) error) error {
	return fn(ctx, repository.TxRepositories{
		Schedules:   m.store,
		Assignments: fakeAssignmentStore{m.store},
		Offerings:   fakeOfferingStore{m.store},
		ReviewNotes: fakeNoteStore{m.store},
	})
}

type fakeCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	hits    int
}

func (c *fakeCache) Get(ctx context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries == nil {
		return appErrors.ErrCacheMiss
	}
	raw, ok := c.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	c.hits++
	return json.Unmarshal(raw, dest)
}

func (c *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries == nil {
		c.entries = make(map[string][]byte)
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = raw
	return nil
}

func (c *fakeCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

func newScheduleServiceForTest(store *fakeScheduleStore, cache scheduleCache) *ScheduleService {
	return NewScheduleService(
		store,
		fakeAssignmentStore{store},
		fakeNoteStore{store},
		fakeOfferingStore{store},
		fakeSlotStore{store},
		store,
		&fakeTxManager{store: store},
		cache,
		nil,
		nil,
		time.Minute,
	)
}

type placement struct {
	offeringID string
	slotID     string
}

func seedPlacement(store *fakeScheduleStore, termID, instructorID, classroomID string) placement {
	offeringID := uuid.NewString()
	slotID := uuid.NewString()
	store.offerings[offeringID] = models.CourseOffering{
		ID:           offeringID,
		CourseID:     uuid.NewString(),
		InstructorID: instructorID,
		ClassroomID:  classroomID,
		TermID:       termID,
	}
	store.slots[slotID] = models.TimeSlot{
		ID:        slotID,
		TermID:    termID,
		DayOfWeek: models.Monday,
		StartTime: "09:00",
		EndTime:   "10:00",
	}
	return placement{offeringID: offeringID, slotID: slotID}
}

func TestScheduleServiceCreateRejectsDuplicate(t *testing.T) {
	store := newFakeScheduleStore()
	svc := newScheduleServiceForTest(store, nil)

	req := CreateScheduleRequest{TermID: uuid.NewString(), DepartmentID: uuid.NewString()}
	first, err := svc.Create(context.Background(), req, "user-1")
	require.NoError(t, err)
	assert.Equal(t, models.ScheduleStatusDraft, first.Status)

	_, err = svc.Create(context.Background(), req, "user-1")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrAlreadyExists))
}

func TestScheduleServiceConcurrentCreateAdmitsOne(t *testing.T) {
	store := newFakeScheduleStore()
	store.existsDelay = 10 * time.Millisecond
	svc := newScheduleServiceForTest(store, nil)

	req := CreateScheduleRequest{TermID: uuid.NewString(), DepartmentID: uuid.NewString()}

	const workers = 8
	start := make(chan struct{})
	results := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := svc.Create(context.Background(), req, "user-1")
			results <- err
		}()
	}
	close(start)
	wg.Wait()
	close(results)

	var successes, duplicates int
	for err := range results {
		if err == nil {
			successes++
			continue
		}
		if appErrors.Is(err, appErrors.ErrAlreadyExists) {
			duplicates++
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, duplicates)
	assert.Len(t, store.schedules, 1)
	assert.Empty(t, svc.locks.locks)
}

func TestScheduleServiceSubmitRecordsNote(t *testing.T) {
	store := newFakeScheduleStore()
	svc := newScheduleServiceForTest(store, nil)

	schedule, err := svc.Create(context.Background(), CreateScheduleRequest{TermID: uuid.NewString(), DepartmentID: uuid.NewString()}, "user-1")
	require.NoError(t, err)

	submitted, err := svc.Submit(context.Background(), schedule.ID, "user-1", "please review the Friday block")
	require.NoError(t, err)
	assert.Equal(t, models.ScheduleStatusPending, submitted.Status)
	require.Len(t, store.notes, 1)
	assert.Equal(t, models.ReviewNoteSuggestion, store.notes[0].NoteType)
	assert.Equal(t, "please review the Friday block", store.notes[0].Message)
	assert.Equal(t, "user-1", store.notes[0].CreatedBy)
}

func TestScheduleLockTableEvictsReleasedEntries(t *testing.T) {
	table := newScheduleLockTable()

	const workers = 12
	keys := []string{"a", "b", "c"}
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(key string) {
			defer wg.Done()
			lock := table.acquire(key)
			defer table.release(key, lock)
		}(keys[i%len(keys)])
	}
	wg.Wait()

	table.mu.Lock()
	defer table.mu.Unlock()
	assert.Empty(t, table.locks)
}

func TestScheduleServiceAddAssignmentDetectsInstructorConflict(t *testing.T) {
	store := newFakeScheduleStore()
	svc := newScheduleServiceForTest(store, nil)

	termID := uuid.NewString()
	schedule, err := svc.Create(context.Background(), CreateScheduleRequest{TermID: termID, DepartmentID: uuid.NewString()}, "user-1")
	require.NoError(t, err)

	instructorID := uuid.NewString()
	first := seedPlacement(store, termID, instructorID, uuid.NewString())
	second := seedPlacement(store, termID, instructorID, uuid.NewString())

	_, err = svc.AddAssignment(context.Background(), schedule.ID, AddAssignmentRequest{CourseOfferingID: first.offeringID, TimeSlotID: first.slotID}, "user-1")
	require.NoError(t, err)

	_, err = svc.AddAssignment(context.Background(), schedule.ID, AddAssignmentRequest{CourseOfferingID: second.offeringID, TimeSlotID: first.slotID}, "user-1")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrScheduleConflict))
}

func TestScheduleServiceAddAssignmentDetectsClassroomConflict(t *testing.T) {
	store := newFakeScheduleStore()
	svc := newScheduleServiceForTest(store, nil)

	termID := uuid.NewString()
	schedule, err := svc.Create(context.Background(), CreateScheduleRequest{TermID: termID, DepartmentID: uuid.NewString()}, "user-1")
	require.NoError(t, err)

	classroomID := uuid.NewString()
	first := seedPlacement(store, termID, uuid.NewString(), classroomID)
	second := seedPlacement(store, termID, uuid.NewString(), classroomID)

	_, err = svc.AddAssignment(context.Background(), schedule.ID, AddAssignmentRequest{CourseOfferingID: first.offeringID, TimeSlotID: first.slotID}, "user-1")
	require.NoError(t, err)

	_, err = svc.AddAssignment(context.Background(), schedule.ID, AddAssignmentRequest{CourseOfferingID: second.offeringID, TimeSlotID: first.slotID}, "user-1")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrScheduleConflict))
}

func TestScheduleServiceAddAssignmentAllowsDistinctSlots(t *testing.T) {
	store := newFakeScheduleStore()
	svc := newScheduleServiceForTest(store, nil)

	termID := uuid.NewString()
	schedule, err := svc.Create(context.Background(), CreateScheduleRequest{TermID: termID, DepartmentID: uuid.NewString()}, "user-1")
	require.NoError(t, err)

	instructorID := uuid.NewString()
	first := seedPlacement(store, termID, instructorID, uuid.NewString())
	second := seedPlacement(store, termID, instructorID, uuid.NewString())

	_, err = svc.AddAssignment(context.Background(), schedule.ID, AddAssignmentRequest{CourseOfferingID: first.offeringID, TimeSlotID: first.slotID}, "user-1")
	require.NoError(t, err)
	_, err = svc.AddAssignment(context.Background(), schedule.ID, AddAssignmentRequest{CourseOfferingID: second.offeringID, TimeSlotID: second.slotID}, "user-1")
	require.NoError(t, err)
}

func TestScheduleServiceAddAssignmentRejectsNonDraft(t *testing.T) {
	store := newFakeScheduleStore()
	svc := newScheduleServiceForTest(store, nil)

	termID := uuid.NewString()
	schedule, err := svc.Create(context.Background(), CreateScheduleRequest{TermID: termID, DepartmentID: uuid.NewString()}, "user-1")
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), schedule.ID, "user-1", "")
	require.NoError(t, err)

	p := seedPlacement(store, termID, uuid.NewString(), uuid.NewString())
	_, err = svc.AddAssignment(context.Background(), schedule.ID, AddAssignmentRequest{CourseOfferingID: p.offeringID, TimeSlotID: p.slotID}, "user-1")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidTransition))
}

func TestScheduleServiceConcurrentAddAssignmentAdmitsOne(t *testing.T) {
	store := newFakeScheduleStore()
	svc := newScheduleServiceForTest(store, nil)

	termID := uuid.NewString()
	schedule, err := svc.Create(context.Background(), CreateScheduleRequest{TermID: termID, DepartmentID: uuid.NewString()}, "user-1")
	require.NoError(t, err)

	const workers = 16
	classroomID := uuid.NewString()
	slotID := uuid.NewString()
	store.slots[slotID] = models.TimeSlot{ID: slotID, TermID: termID, DayOfWeek: models.Monday, StartTime: "09:00", EndTime: "10:00"}

	offerings := make([]string, workers)
	for i := range offerings {
		id := uuid.NewString()
		store.offerings[id] = models.CourseOffering{
			ID:           id,
			CourseID:     uuid.NewString(),
			InstructorID: uuid.NewString(),
			ClassroomID:  classroomID,
			TermID:       termID,
		}
		offerings[i] = id
	}

	var wg sync.WaitGroup
	results := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(offeringID string) {
			defer wg.Done()
			_, err := svc.AddAssignment(context.Background(), schedule.ID, AddAssignmentRequest{CourseOfferingID: offeringID, TimeSlotID: slotID}, "user-1")
			results <- err
		}(offerings[i])
	}
	wg.Wait()
	close(results)

	var successes, conflicts int
	for err := range results {
		if err == nil {
			successes++
			continue
		}
		if appErrors.Is(err, appErrors.ErrScheduleConflict) {
			conflicts++
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, conflicts)
	assert.Len(t, store.assignments, 1)
}

func TestScheduleServiceSubmitTransitions(t *testing.T) {
	store := newFakeScheduleStore()
	svc := newScheduleServiceForTest(store, nil)

	schedule, err := svc.Create(context.Background(), CreateScheduleRequest{TermID: uuid.NewString(), DepartmentID: uuid.NewString()}, "user-1")
	require.NoError(t, err)

	submitted, err := svc.Submit(context.Background(), schedule.ID, "user-1", "")
	require.NoError(t, err)
	assert.Equal(t, models.ScheduleStatusPending, submitted.Status)
	assert.NotNil(t, submitted.SubmittedAt)

	_, err = svc.Submit(context.Background(), schedule.ID, "user-1", "")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidTransition))
}

func TestScheduleServiceApproveOnlyWhenPending(t *testing.T) {
	store := newFakeScheduleStore()
	svc := newScheduleServiceForTest(store, nil)

	schedule, err := svc.Create(context.Background(), CreateScheduleRequest{TermID: uuid.NewString(), DepartmentID: uuid.NewString()}, "user-1")
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), schedule.ID, "dean-1", EvaluateScheduleRequest{})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidTransition))

	_, err = svc.Submit(context.Background(), schedule.ID, "user-1", "")
	require.NoError(t, err)

	approved, err := svc.Approve(context.Background(), schedule.ID, "dean-1", EvaluateScheduleRequest{Note: "looks good"})
	require.NoError(t, err)
	assert.Equal(t, models.ScheduleStatusApproved, approved.Status)
	require.Len(t, store.notes, 1)
	assert.Equal(t, models.ReviewNoteApproval, store.notes[0].NoteType)

	// terminal: no second evaluation
	_, err = svc.Reject(context.Background(), schedule.ID, "dean-1", EvaluateScheduleRequest{Note: "late"})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidTransition))
}

func TestScheduleServiceRejectRequiresNote(t *testing.T) {
	store := newFakeScheduleStore()
	svc := newScheduleServiceForTest(store, nil)

	schedule, err := svc.Create(context.Background(), CreateScheduleRequest{TermID: uuid.NewString(), DepartmentID: uuid.NewString()}, "user-1")
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), schedule.ID, "user-1", "")
	require.NoError(t, err)

	_, err = svc.Reject(context.Background(), schedule.ID, "dean-1", EvaluateScheduleRequest{})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))

	rejected, err := svc.Reject(context.Background(), schedule.ID, "dean-1", EvaluateScheduleRequest{Note: "instructor overload on Monday"})
	require.NoError(t, err)
	assert.Equal(t, models.ScheduleStatusRejected, rejected.Status)
	require.Len(t, store.notes, 1)
	assert.Equal(t, models.ReviewNoteRejection, store.notes[0].NoteType)
}

func TestScheduleServiceCheckConflictsReportsKinds(t *testing.T) {
	store := newFakeScheduleStore()
	svc := newScheduleServiceForTest(store, nil)

	termID := uuid.NewString()
	schedule, err := svc.Create(context.Background(), CreateScheduleRequest{TermID: termID, DepartmentID: uuid.NewString()}, "user-1")
	require.NoError(t, err)

	instructorID := uuid.NewString()
	classroomID := uuid.NewString()
	first := seedPlacement(store, termID, instructorID, classroomID)
	_, err = svc.AddAssignment(context.Background(), schedule.ID, AddAssignmentRequest{CourseOfferingID: first.offeringID, TimeSlotID: first.slotID}, "user-1")
	require.NoError(t, err)

	second := seedPlacement(store, termID, instructorID, classroomID)
	conflicts, err := svc.CheckConflicts(context.Background(), schedule.ID, CheckConflictsRequest{
		CourseOfferingID: second.offeringID,
		TimeSlotID:       first.slotID,
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []models.ConflictKind{models.ConflictInstructor, models.ConflictClassroom}, conflicts)

	none, err := svc.CheckConflicts(context.Background(), schedule.ID, CheckConflictsRequest{
		CourseOfferingID: second.offeringID,
		TimeSlotID:       second.slotID,
	})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestScheduleServiceGetServesFromCache(t *testing.T) {
	store := newFakeScheduleStore()
	cache := &fakeCache{}
	svc := newScheduleServiceForTest(store, cache)

	schedule, err := svc.Create(context.Background(), CreateScheduleRequest{TermID: uuid.NewString(), DepartmentID: uuid.NewString()}, "user-1")
	require.NoError(t, err)

	_, cacheHit, err := svc.Get(context.Background(), schedule.ID)
	require.NoError(t, err)
	assert.False(t, cacheHit)
	reads := store.findCount

	detail, cacheHit, err := svc.Get(context.Background(), schedule.ID)
	require.NoError(t, err)
	assert.True(t, cacheHit)
	assert.Equal(t, schedule.ID, detail.ID)
	assert.Equal(t, 1, cache.hits)
	assert.Equal(t, reads, store.findCount)
}
