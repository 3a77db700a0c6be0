package ballots

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"miballot-backend/services/ballots/db"
	"miballot-backend/services/ballots/mvic"
)

// store wraps a transaction's queries with get-or-create semantics. Natural
// unique keys plus conflict-tolerant inserts make every operation idempotent
// and safe against concurrent crawler instances.
type store struct {
	qry *db.Queries
}

func (s store) category(ctx context.Context, name string) (db.DistrictCategory, error) {
	err := s.qry.CreateDistrictCategory(ctx, name)
	if err != nil {
		return db.DistrictCategory{}, fmt.Errorf("create district category: %w", err)
	}
	return s.qry.GetDistrictCategory(ctx, name)
}

func (s store) district(ctx context.Context, categoryName, name string) (db.District, error) {
	category, err := s.category(ctx, categoryName)
	if err != nil {
		return db.District{}, err
	}
	err = s.qry.CreateDistrict(ctx, db.CreateDistrictParams{
		CategoryID: category.ID,
		Name:       name,
	})
	if err != nil {
		return db.District{}, fmt.Errorf("create district: %w", err)
	}
	return s.qry.GetDistrict(ctx, db.GetDistrictParams{
		CategoryID: category.ID,
		Name:       name,
	})
}

func (s store) election(ctx context.Context, mvicID int64, election mvic.Election) (db.Election, error) {
	err := s.qry.CreateElection(ctx, db.CreateElectionParams{
		MvicID: mvicID,
		Name:   election.Name,
		Date:   election.Date.Format("2006-01-02"),
	})
	if err != nil {
		return db.Election{}, fmt.Errorf("create election: %w", err)
	}
	row, err := s.qry.GetElectionByMvicID(ctx, mvicID)
	if err != nil {
		return db.Election{}, err
	}
	if row.Name != election.Name {
		return db.Election{}, fmt.Errorf(
			"election %d name changed: %q != %q", mvicID, row.Name, election.Name)
	}
	return row, nil
}

// stripZeros normalizes ward/number strings; all-zero values mean "none".
func stripZeros(s string) string {
	if strings.Trim(s, "0") == "" {
		return ""
	}
	return s
}

func (s store) precinct(ctx context.Context, precinct mvic.Precinct) (db.Precinct, error) {
	county, err := s.district(ctx, "County", precinct.County)
	if err != nil {
		return db.Precinct{}, err
	}
	jurisdiction, err := s.district(ctx, "Jurisdiction", precinct.Jurisdiction)
	if err != nil {
		return db.Precinct{}, err
	}

	params := db.CreatePrecinctParams{
		CountyID:       county.ID,
		JurisdictionID: jurisdiction.ID,
		Ward:           stripZeros(precinct.Ward),
		Number:         stripZeros(precinct.Number),
	}
	err = s.qry.CreatePrecinct(ctx, params)
	if err != nil {
		return db.Precinct{}, fmt.Errorf("create precinct: %w", err)
	}
	return s.qry.GetPrecinct(ctx, db.GetPrecinctParams(params))
}

// position get-or-creates a position row. A null district marks a
// precinct-scoped position, which SQLite's distinct NULLs would otherwise
// duplicate on every parse, so those look up before inserting.
func (s store) position(ctx context.Context, params db.CreatePositionParams) (db.Position, error) {
	if !params.DistrictID.Valid {
		row, err := s.qry.GetPositionNoDistrict(ctx, db.GetPositionNoDistrictParams{
			ElectionID: params.ElectionID,
			Name:       params.Name,
			Term:       params.Term,
			Seats:      params.Seats,
			Section:    params.Section,
		})
		if err == nil {
			return row, nil
		}
		if err != sql.ErrNoRows {
			return db.Position{}, err
		}
	}

	err := s.qry.CreatePosition(ctx, params)
	if err != nil {
		return db.Position{}, fmt.Errorf("create position: %w", err)
	}
	if !params.DistrictID.Valid {
		return s.qry.GetPositionNoDistrict(ctx, db.GetPositionNoDistrictParams{
			ElectionID: params.ElectionID,
			Name:       params.Name,
			Term:       params.Term,
			Seats:      params.Seats,
			Section:    params.Section,
		})
	}
	return s.qry.GetPosition(ctx, db.GetPositionParams(params))
}

func (s store) candidate(ctx context.Context, params db.UpsertCandidateParams) (db.Candidate, error) {
	err := s.qry.UpsertCandidate(ctx, params)
	if err != nil {
		return db.Candidate{}, fmt.Errorf("upsert candidate: %w", err)
	}
	return s.qry.GetCandidate(ctx, db.GetCandidateParams{
		PositionID: params.PositionID,
		Name:       params.Name,
	})
}

func (s store) proposal(ctx context.Context, params db.UpsertProposalParams) (db.Proposal, error) {
	err := s.qry.UpsertProposal(ctx, params)
	if err != nil {
		return db.Proposal{}, fmt.Errorf("upsert proposal: %w", err)
	}
	return s.qry.GetProposal(ctx, db.GetProposalParams{
		ElectionID: params.ElectionID,
		DistrictID: params.DistrictID,
		Name:       params.Name,
	})
}
