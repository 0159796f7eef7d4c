package storage

import (
	"context"
	"errors"

	"github.com/Ham3798/solana-voting-sample/address"
	"github.com/Ham3798/solana-voting-sample/logging"
	"github.com/jackc/pgx/v5/pgconn"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OpenPostgres connects to the relational backend and migrates the three
// registry tables.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, pkgerrors.Wrap(err, "open postgres connection")
	}
	if err := db.AutoMigrate(&pollRow{}, &candidateRow{}, &voteRecordRow{}); err != nil {
		return nil, pkgerrors.Wrap(err, "migrate registry tables")
	}
	return db, nil
}

type PostgresPollStorage struct {
	DB *gorm.DB
}

func (s *PostgresPollStorage) Get(ctx context.Context, addr address.Address) (*Poll, error) {
	var row pollRow
	err := s.DB.WithContext(ctx).Where("address = ?", string(addr)).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		logging.Log.Errorf("POLL: postgres get failed: %v", err)
		return nil, pkgerrors.Wrap(err, "get poll")
	}
	return row.toRecord(), nil
}

func (s *PostgresPollStorage) GetAll(ctx context.Context) ([]*Poll, error) {
	var rows []pollRow
	if err := s.DB.WithContext(ctx).Order("poll_id ASC").Find(&rows).Error; err != nil {
		logging.Log.Errorf("POLL: postgres list failed: %v", err)
		return nil, pkgerrors.Wrap(err, "list polls")
	}
	polls := make([]*Poll, 0, len(rows))
	for _, row := range rows {
		polls = append(polls, row.toRecord())
	}
	return polls, nil
}

func (s *PostgresPollStorage) Create(ctx context.Context, poll *Poll) error {
	row := pollRowFromRecord(poll)
	create := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "address"}},
		DoNothing: true,
	}).Create(&row)
	if create.Error != nil {
		if isUniqueViolation(create.Error) {
			return ErrRecordAlreadyExists
		}
		logging.Log.Errorf("POLL: postgres create failed: %v", create.Error)
		return pkgerrors.Wrap(create.Error, "create poll")
	}
	if create.RowsAffected == 0 {
		logging.Log.Warnf("POLL: record already exists at %s", poll.Address)
		return ErrRecordAlreadyExists
	}
	return nil
}

func (s *PostgresPollStorage) Put(ctx context.Context, poll *Poll) error {
	row := pollRowFromRecord(poll)
	save := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "address"}},
		DoUpdates: clause.Assignments(map[string]any{
			"poll_id":         row.PollID,
			"description":     row.Description,
			"candidate_count": row.CandidateCount,
			"start_time":      row.StartTime,
			"end_time":        row.EndTime,
		}),
	}).Create(&row)
	if save.Error != nil {
		logging.Log.Errorf("POLL: postgres put failed: %v", save.Error)
		return pkgerrors.Wrap(save.Error, "put poll")
	}
	return nil
}

func (s *PostgresPollStorage) DeleteAll(ctx context.Context) error {
	if err := s.DB.WithContext(ctx).Exec("DELETE FROM polls").Error; err != nil {
		logging.Log.Errorf("POLL: postgres clear failed: %v", err)
		return pkgerrors.Wrap(err, "clear polls")
	}
	return nil
}

type PostgresCandidateStorage struct {
	DB *gorm.DB
}

func (s *PostgresCandidateStorage) Get(ctx context.Context, addr address.Address) (*Candidate, error) {
	var row candidateRow
	err := s.DB.WithContext(ctx).Where("address = ?", string(addr)).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		logging.Log.Errorf("CANDIDATE: postgres get failed: %v", err)
		return nil, pkgerrors.Wrap(err, "get candidate")
	}
	return row.toRecord(), nil
}

func (s *PostgresCandidateStorage) GetAll(ctx context.Context) ([]*Candidate, error) {
	var rows []candidateRow
	if err := s.DB.WithContext(ctx).Order("poll_id ASC, candidate_id ASC").Find(&rows).Error; err != nil {
		logging.Log.Errorf("CANDIDATE: postgres list failed: %v", err)
		return nil, pkgerrors.Wrap(err, "list candidates")
	}
	candidates := make([]*Candidate, 0, len(rows))
	for _, row := range rows {
		candidates = append(candidates, row.toRecord())
	}
	return candidates, nil
}

func (s *PostgresCandidateStorage) Create(ctx context.Context, candidate *Candidate) error {
	row := candidateRowFromRecord(candidate)
	create := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "address"}},
		DoNothing: true,
	}).Create(&row)
	if create.Error != nil {
		if isUniqueViolation(create.Error) {
			return ErrRecordAlreadyExists
		}
		logging.Log.Errorf("CANDIDATE: postgres create failed: %v", create.Error)
		return pkgerrors.Wrap(create.Error, "create candidate")
	}
	if create.RowsAffected == 0 {
		logging.Log.Warnf("CANDIDATE: record already exists at %s", candidate.Address)
		return ErrRecordAlreadyExists
	}
	return nil
}

func (s *PostgresCandidateStorage) DeleteAll(ctx context.Context) error {
	if err := s.DB.WithContext(ctx).Exec("DELETE FROM candidates").Error; err != nil {
		logging.Log.Errorf("CANDIDATE: postgres clear failed: %v", err)
		return pkgerrors.Wrap(err, "clear candidates")
	}
	return nil
}

type PostgresVoteRecordStorage struct {
	DB *gorm.DB
}

func (s *PostgresVoteRecordStorage) Get(ctx context.Context, addr address.Address) (*VoteRecord, error) {
	var row voteRecordRow
	err := s.DB.WithContext(ctx).Where("address = ?", string(addr)).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		logging.Log.Errorf("VOTE: postgres get failed: %v", err)
		return nil, pkgerrors.Wrap(err, "get vote record")
	}
	return row.toRecord(), nil
}

func (s *PostgresVoteRecordStorage) GetAll(ctx context.Context) ([]*VoteRecord, error) {
	var rows []voteRecordRow
	if err := s.DB.WithContext(ctx).Order("poll_id ASC, voter ASC").Find(&rows).Error; err != nil {
		logging.Log.Errorf("VOTE: postgres list failed: %v", err)
		return nil, pkgerrors.Wrap(err, "list vote records")
	}
	records := make([]*VoteRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.toRecord())
	}
	return records, nil
}

func (s *PostgresVoteRecordStorage) Create(ctx context.Context, record *VoteRecord) error {
	row := voteRecordRowFromRecord(record)
	create := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "address"}},
		DoNothing: true,
	}).Create(&row)
	if create.Error != nil {
		if isUniqueViolation(create.Error) {
			return ErrRecordAlreadyExists
		}
		logging.Log.Errorf("VOTE: postgres create failed: %v", create.Error)
		return pkgerrors.Wrap(create.Error, "create vote record")
	}
	if create.RowsAffected == 0 {
		logging.Log.Warnf("VOTE: record already exists at %s", record.Address)
		return ErrRecordAlreadyExists
	}
	return nil
}

func (s *PostgresVoteRecordStorage) DeleteAll(ctx context.Context) error {
	if err := s.DB.WithContext(ctx).Exec("DELETE FROM vote_records").Error; err != nil {
		logging.Log.Errorf("VOTE: postgres clear failed: %v", err)
		return pkgerrors.Wrap(err, "clear vote records")
	}
	return nil
}

type pollRow struct {
	Address        string `gorm:"column:address;primaryKey"`
	PollID         uint64 `gorm:"column:poll_id"`
	Description    string `gorm:"column:description"`
	CandidateCount uint64 `gorm:"column:candidate_count"`
	StartTime      uint64 `gorm:"column:start_time"`
	EndTime        uint64 `gorm:"column:end_time"`
}

func (pollRow) TableName() string {
	return "polls"
}

func pollRowFromRecord(poll *Poll) pollRow {
	return pollRow{
		Address:        string(poll.Address),
		PollID:         poll.PollID,
		Description:    poll.Description,
		CandidateCount: poll.CandidateCount,
		StartTime:      poll.StartTime,
		EndTime:        poll.EndTime,
	}
}

func (r pollRow) toRecord() *Poll {
	return &Poll{
		Address:        address.Address(r.Address),
		PollID:         r.PollID,
		Description:    r.Description,
		CandidateCount: r.CandidateCount,
		StartTime:      r.StartTime,
		EndTime:        r.EndTime,
	}
}

type candidateRow struct {
	Address     string `gorm:"column:address;primaryKey"`
	PollID      uint64 `gorm:"column:poll_id"`
	CandidateID string `gorm:"column:candidate_id"`
	Name        string `gorm:"column:name"`
	Description string `gorm:"column:description"`
}

func (candidateRow) TableName() string {
	return "candidates"
}

func candidateRowFromRecord(candidate *Candidate) candidateRow {
	return candidateRow{
		Address:     string(candidate.Address),
		PollID:      candidate.PollID,
		CandidateID: string(candidate.CandidateID),
		Name:        candidate.Name,
		Description: candidate.Description,
	}
}

func (r candidateRow) toRecord() *Candidate {
	return &Candidate{
		Address:     address.Address(r.Address),
		PollID:      r.PollID,
		CandidateID: address.Identity(r.CandidateID),
		Name:        r.Name,
		Description: r.Description,
	}
}

type voteRecordRow struct {
	Address   string `gorm:"column:address;primaryKey"`
	PollID    uint64 `gorm:"column:poll_id"`
	Voter     string `gorm:"column:voter"`
	Candidate string `gorm:"column:candidate"`
}

func (voteRecordRow) TableName() string {
	return "vote_records"
}

func voteRecordRowFromRecord(record *VoteRecord) voteRecordRow {
	return voteRecordRow{
		Address:   string(record.Address),
		PollID:    record.PollID,
		Voter:     string(record.Voter),
		Candidate: string(record.Candidate),
	}
}

func (r voteRecordRow) toRecord() *VoteRecord {
	return &VoteRecord{
		Address:   address.Address(r.Address),
		PollID:    r.PollID,
		Voter:     address.Identity(r.Voter),
		Candidate: address.Identity(r.Candidate),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ PollStorage = (*PostgresPollStorage)(nil)
var _ CandidateStorage = (*PostgresCandidateStorage)(nil)
var _ VoteRecordStorage = (*PostgresVoteRecordStorage)(nil)
