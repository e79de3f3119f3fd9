package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/MKhiriev/eigen-library/internal/logger"
	"github.com/MKhiriev/eigen-library/models"
)

type memberRepository struct {
	*DB
	logger *logger.Logger
}

func NewMemberRepository(db *DB, logger *logger.Logger) MemberRepository {
	logger.Debug().Msg("creating member repository")
	return &memberRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *memberRepository) ListMembers(ctx context.Context) ([]models.Member, error) {
	log := logger.FromContext(ctx)

	query, args, err := listMembersQuery(r.builder()).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.querier(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*memberRepository.ListMembers").Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	members := make([]models.Member, 0, 16)
	for rows.Next() {
		member, scanErr := scanMember(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*memberRepository.ListMembers").Msg("failed to scan member row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		members = append(members, member)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "*memberRepository.ListMembers").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return members, nil
}

func (r *memberRepository) GetMember(ctx context.Context, code string) (models.Member, error) {
	log := logger.FromContext(ctx)

	if err := r.lockRow(ctx, membersTable, code); err != nil {
		if isNoRows(err) {
			return models.Member{}, ErrMemberNotFound
		}
		log.Err(err).Str("func", "*memberRepository.GetMember").Str("code", code).Msg("failed to lock member row")
		return models.Member{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	query, args, err := getMemberQuery(r.builder(), code).ToSql()
	if err != nil {
		return models.Member{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	member, err := scanMember(r.querier(ctx).QueryRowContext(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return models.Member{}, ErrMemberNotFound
		}
		log.Err(err).Str("func", "*memberRepository.GetMember").Str("code", code).Msg("failed to get member")
		return models.Member{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return member, nil
}

func (r *memberRepository) CreateMember(ctx context.Context, member models.Member) (models.Member, error) {
	log := logger.FromContext(ctx)

	createdAt := time.Now().UTC()
	if member.CreatedAt != nil {
		createdAt = *member.CreatedAt
	}

	query, args, err := insertMemberQuery(r.builder(), member.Code, member.Name, createdAt).ToSql()
	if err != nil {
		return models.Member{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.querier(ctx).ExecContext(ctx, query, args...); err != nil {
		if r.dialect.Classifier.IsUniqueViolation(err) {
			return models.Member{}, ErrMemberAlreadyExists
		}
		log.Err(err).Str("func", "*memberRepository.CreateMember").Str("code", member.Code).Msg("failed to insert member")
		return models.Member{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return models.Member{
		Code:      member.Code,
		Name:      member.Name,
		CreatedAt: &createdAt,
	}, nil
}

func (r *memberRepository) SetPenalty(ctx context.Context, code string, until time.Time) error {
	log := logger.FromContext(ctx)

	query, args, err := setPenaltyQuery(r.builder(), code, until.UTC()).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.querier(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*memberRepository.SetPenalty").Str("code", code).Msg("failed to set penalty")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrMemberNotFound
	}

	return nil
}

func (r *memberRepository) ClearExpiredPenalties(ctx context.Context, now time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := clearExpiredPenaltiesQuery(r.builder(), now.UTC()).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.querier(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*memberRepository.ClearExpiredPenalties").Msg("failed to clear penalties")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return affected, nil
}

func scanMember(row rowScanner) (models.Member, error) {
	var member models.Member
	var penaltyUntil, createdAt sql.NullTime

	if err := row.Scan(&member.Code, &member.Name, &penaltyUntil, &member.BorrowedBooks, &createdAt); err != nil {
		return models.Member{}, err
	}

	member.PenaltyUntil = nullTimePtr(penaltyUntil)
	member.CreatedAt = nullTimePtr(createdAt)
	return member, nil
}
