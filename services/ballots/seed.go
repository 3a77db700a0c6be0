package ballots

import (
	"context"

	"miballot-backend/services/ballots/db"
	"miballot-backend/services/ballots/districts"
)

// defaultParties is the closed set of parties appearing on Michigan ballots,
// with display colors. "Nonpartisan" and "No Party Affiliation" are
// placeholders for candidates without one.
var defaultParties = []db.UpsertPartyParams{
	{Name: "Nonpartisan", Color: "#999"},
	{Name: "No Party Affiliation", Color: "#999"},
	{Name: "Democratic", Color: "#3333FF"},
	{Name: "Green", Color: "#00A95C"},
	{Name: "Libertarian", Color: "#ECC850"},
	{Name: "Natural Law", Color: "#FFF7D6"},
	{Name: "Republican", Color: "#E81B23"},
	{Name: "U.S. Taxpayers", Color: "#A356DE"},
	{Name: "Working Class", Color: "#A30000"},
}

// Seed creates the party list, every known district category, and the
// Michigan state district. It is idempotent and must run before any parse.
func (s Service) Seed(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "Seed")
	defer span.End()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	st := store{qry: s.qry.WithTx(tx)}

	for _, party := range defaultParties {
		if err := st.qry.UpsertParty(ctx, party); err != nil {
			return err
		}
	}
	for _, name := range districts.KnownCategories {
		if err := st.qry.CreateDistrictCategory(ctx, name); err != nil {
			return err
		}
	}
	if _, err := st.district(ctx, "State", "Michigan"); err != nil {
		return err
	}

	return tx.Commit()
}
