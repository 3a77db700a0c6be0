package districts

import (
	"context"
	"log/slog"

	"miballot-backend/lib/textutil"
	"miballot-backend/services/ballots/classifier"
	"miballot-backend/services/ballots/mvic"
)

// division labels that carry no usable category; the office label decides
var passthroughDivisions = map[string]bool{
	"Congressional": true,
	"Legislative":   true,
	"Delegate":      true,
	"Judicial":      true,
}

// division labels meaning a statewide contest
var stateDivisions = map[string]bool{
	"State Board":  true,
	"State Boards": true,
	"Presidential": true,
}

// officeCategories maps position names directly to a category when the
// division is no help.
var officeCategories = map[string]string{
	"United States Senator":               "State",
	"Representative in Congress":          "US Congress",
	"State Senator":                       "State Senate",
	"Representative in State Legislature": "State House",
	"Justice of Supreme Court":            "State",
	"Judge of Court of Appeals":           "Court of Appeals",
	"Judge of Municipal Court":            "Municipal Court",
	"Judge of Probate Court":              "Probate Court",
	"Judge of Probate District Court":     "Probate Court",
	"Judge of Circuit Court":              "Circuit Court",
	"Judge of District Court":             "District Court",
	"County Commissioner":                 "County Commissioner",
	"Delegate to County Convention":       "Precinct",
}

func categoryFromLabel(label string) (string, bool) {
	if label == "" || passthroughDivisions[label] {
		return "", false
	}
	if stateDivisions[label] {
		return "State", true
	}
	cleaned := textutil.CleanDistrictCategory(label)
	if knownCategorySet[cleaned] {
		return cleaned, true
	}
	return "", false
}

// ResolveOffice determines the (category, district) pair for a classified
// office. The ladder tries the division label, then the office name, then
// the mobile-only label; the resolved category then dictates how the
// district name is formed from the precinct and the term-line hint.
func ResolveOffice(ctx context.Context, office *classifier.Office, precinct mvic.Precinct) (Resolution, error) {
	category, ok := categoryFromLabel(office.Division)
	if !ok {
		category, ok = officeCategories[office.Name]
	}
	if !ok {
		category, ok = categoryFromLabel(office.MobileOnly)
	}
	if !ok {
		return Resolution{}, resolveErrorf("office category", office.Division+" / "+office.Name)
	}

	resolution := Resolution{Category: category}
	switch category {
	case "State":
		resolution.District = "Michigan"
	case "County":
		resolution.District = precinct.County
	case "City", "Township", "Village", "Jurisdiction", "Authority", "Metropolitan":
		resolution.District = precinct.Jurisdiction
	case "Precinct":
		resolution.PrecinctScoped = true
	case "County Commissioner":
		if office.DistrictHint == "" {
			return Resolution{}, resolveErrorf("commissioner district", office.Name)
		}
		resolution.District = CountyDistrictLabel(precinct, office.DistrictHint)
	case "Ward":
		resolution.District = WardLabel(precinct, office.DistrictHint)
	default:
		if office.DistrictHint != "" {
			resolution.District = textutil.CleanDistrictName(office.DistrictHint)
			resolution.CreatedFallback = true
			slog.WarnContext(ctx, "district taken from ballot text",
				"category", category, "district", resolution.District)
		} else {
			// known to happen on older ballots that omit the district line
			slog.WarnContext(ctx, "office is missing a district, assuming jurisdiction",
				"office", office.Name, "category", category)
			resolution.Category = "Jurisdiction"
			resolution.District = precinct.Jurisdiction
			resolution.CreatedFallback = true
		}
	}
	return resolution, nil
}
