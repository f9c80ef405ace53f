package usecase

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"medassist/internal/domain/entity"
	"medassist/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

var errStorage = errors.New("storage unavailable")

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// txPool lets Begin, Commit and Rollback succeed without a database. Any
// statement sent through it fails.
type txPool struct {
	commits   int
	rollbacks int
}

var errNoDatabase = errors.New("no database behind txPool")

func (p *txPool) PrepareContext(context.Context, string) (*sql.Stmt, error) {
	return nil, errNoDatabase
}

func (p *txPool) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, errNoDatabase
}

func (p *txPool) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, errNoDatabase
}

func (p *txPool) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return &sql.Row{}
}

func (p *txPool) BeginTx(context.Context, *sql.TxOptions) (gorm.ConnPool, error) {
	return &poolTx{pool: p}, nil
}

type poolTx struct {
	pool *txPool
	done bool
}

func (t *poolTx) PrepareContext(ctx context.Context, query string) (*sql.Stmt, error) {
	return t.pool.PrepareContext(ctx, query)
}

func (t *poolTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return t.pool.ExecContext(ctx, query, args...)
}

func (t *poolTx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return t.pool.QueryContext(ctx, query, args...)
}

func (t *poolTx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return t.pool.QueryRowContext(ctx, query, args...)
}

func (t *poolTx) Commit() error {
	if t.done {
		return sql.ErrTxDone
	}
	t.done = true
	t.pool.commits++
	return nil
}

func (t *poolTx) Rollback() error {
	if t.done {
		return sql.ErrTxDone
	}
	t.done = true
	t.pool.rollbacks++
	return nil
}

// txDB is a handle whose transactions open and commit against txPool
func txDB(t *testing.T) (*gorm.DB, *txPool) {
	t.Helper()
	pool := &txPool{}
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{ConnPool: pool})
	require.NoError(t, err)
	return db, pool
}

// inTransaction reports whether db was taken from an open transaction
func inTransaction(db *gorm.DB) bool {
	_, ok := db.Statement.ConnPool.(gorm.TxCommitter)
	return ok
}

// dummyDB gives usecases a handle to pass through to the in-memory repositories
func dummyDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{})
	require.NoError(t, err)
	return db
}

type fakePatientRepo struct {
	patients map[uuid.UUID]entity.Patient
}

func newFakePatientRepo(patients ...entity.Patient) *fakePatientRepo {
	repo := &fakePatientRepo{patients: map[uuid.UUID]entity.Patient{}}
	for _, p := range patients {
		repo.patients[p.ID] = p
	}
	return repo
}

func (r *fakePatientRepo) Create(_ context.Context, _ *gorm.DB, patient *entity.Patient) error {
	patient.ID = uuid.New()
	r.patients[patient.ID] = *patient
	return nil
}

func (r *fakePatientRepo) FindByID(_ context.Context, _ *gorm.DB, doctorID, id uuid.UUID) (*entity.Patient, error) {
	p, ok := r.patients[id]
	if !ok || p.DoctorID != doctorID {
		return nil, nil
	}
	return &p, nil
}

func (r *fakePatientRepo) FindByDoctorID(_ context.Context, _ *gorm.DB, doctorID uuid.UUID) ([]entity.Patient, error) {
	var out []entity.Patient
	for _, p := range r.patients {
		if p.DoctorID == doctorID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePatientRepo) Update(_ context.Context, _ *gorm.DB, patient *entity.Patient) error {
	r.patients[patient.ID] = *patient
	return nil
}

func (r *fakePatientRepo) Delete(_ context.Context, _ *gorm.DB, _, id uuid.UUID) error {
	delete(r.patients, id)
	return nil
}

type fakeSymptomRecordRepo struct {
	records []entity.SymptomRecord
	err     error
}

func (r *fakeSymptomRecordRepo) Create(_ context.Context, _ *gorm.DB, record *entity.SymptomRecord) error {
	if r.err != nil {
		return r.err
	}
	record.ID = uuid.New()
	r.records = append(r.records, *record)
	return nil
}

func (r *fakeSymptomRecordRepo) FindByPatientID(_ context.Context, _ *gorm.DB, doctorID, patientID uuid.UUID) ([]entity.SymptomRecord, error) {
	var out []entity.SymptomRecord
	for _, rec := range r.records {
		if rec.DoctorID == doctorID && rec.PatientID == patientID {
			out = append(out, rec)
		}
	}
	return out, nil
}

type fakeDiagnosisRepo struct {
	diagnoses []entity.Diagnosis
	err       error
}

func (r *fakeDiagnosisRepo) Create(_ context.Context, _ *gorm.DB, diagnosis *entity.Diagnosis) error {
	if r.err != nil {
		return r.err
	}
	diagnosis.ID = uuid.New()
	r.diagnoses = append(r.diagnoses, *diagnosis)
	return nil
}

type fakeTreatmentRepo struct {
	treatments []entity.Treatment
	err        error
}

func (r *fakeTreatmentRepo) Create(_ context.Context, _ *gorm.DB, treatment *entity.Treatment) error {
	if r.err != nil {
		return r.err
	}
	treatment.ID = uuid.New()
	r.treatments = append(r.treatments, *treatment)
	return nil
}

type fakeSummaryRepo struct {
	summaries []entity.MedicalSummary
}

func (r *fakeSummaryRepo) Create(_ context.Context, _ *gorm.DB, summary *entity.MedicalSummary) error {
	summary.ID = uuid.New()
	r.summaries = append(r.summaries, *summary)
	return nil
}

func (r *fakeSummaryRepo) FindByPatientID(_ context.Context, _ *gorm.DB, doctorID, patientID uuid.UUID) ([]entity.MedicalSummary, error) {
	var out []entity.MedicalSummary
	for _, s := range r.summaries {
		if s.DoctorID == doctorID && s.PatientID == patientID {
			out = append(out, s)
		}
	}
	return out, nil
}

// fakeClinicalAI returns canned payloads and records what it was asked
type fakeClinicalAI struct {
	analysis     json.RawMessage
	analysisErr  error
	treatment    json.RawMessage
	treatmentErr error
	summary      json.RawMessage
	summaryErr   error

	symptomInputs   []service.SymptomInput
	treatmentInputs []service.TreatmentInput
	summaryInputs   []service.SummaryInput
}

func (f *fakeClinicalAI) AnalyzeSymptoms(_ context.Context, input service.SymptomInput) (json.RawMessage, error) {
	f.symptomInputs = append(f.symptomInputs, input)
	return f.analysis, f.analysisErr
}

func (f *fakeClinicalAI) SuggestTreatment(_ context.Context, input service.TreatmentInput) (json.RawMessage, error) {
	f.treatmentInputs = append(f.treatmentInputs, input)
	return f.treatment, f.treatmentErr
}

func (f *fakeClinicalAI) SummarizeRecord(_ context.Context, input service.SummaryInput) (json.RawMessage, error) {
	f.summaryInputs = append(f.summaryInputs, input)
	return f.summary, f.summaryErr
}

// fakeAuditService counts actions; it can also fail to check that audit
// errors never abort the operation being audited
type fakeAuditService struct {
	actions []string
	handles []*gorm.DB
	err     error
}

func (f *fakeAuditService) record(db *gorm.DB, action string) error {
	f.actions = append(f.actions, action)
	f.handles = append(f.handles, db)
	return f.err
}

func (f *fakeAuditService) LogEvent(_ context.Context, db *gorm.DB, _ *uuid.UUID, action string, _ entity.JSON) error {
	return f.record(db, action)
}

func (f *fakeAuditService) LogCreate(_ context.Context, db *gorm.DB, _ *uuid.UUID, action string, _ string, _ string, _ interface{}) error {
	return f.record(db, action)
}

func (f *fakeAuditService) LogUpdate(_ context.Context, db *gorm.DB, _ *uuid.UUID, action string, _ string, _ string, _, _ interface{}) error {
	return f.record(db, action)
}

func (f *fakeAuditService) LogDelete(_ context.Context, db *gorm.DB, _ *uuid.UUID, action string, _ string, _ string, _ interface{}) error {
	return f.record(db, action)
}
