package service

import (
	"fmt"

	"github.com/Risingdell/Placement-mangement/internal/models"
)

// Eligibility rules, evaluated in a fixed order: placed flag, CGPA,
// backlogs, branch allow-list, duplicate application. The evaluator is
// pure; malformed optional inputs degrade to "rule skipped", never to
// an error. An absent or empty allow-list means every branch is
// eligible (fail-open, matching the portal's historical behavior).

// EvaluateEligibility collects every violated rule, for drive listings
// where the student should see all the reasons at once.
func EvaluateEligibility(snapshot *models.AcademicSnapshot, drive *models.Drive, alreadyApplied, alreadyPlaced bool) models.EligibilityResult {
	var reasons []string

	if alreadyPlaced {
		reasons = append(reasons, "Already placed")
	}

	if snapshot != nil {
		if drive.MinCGPA != nil && snapshot.CGPA < *drive.MinCGPA {
			reasons = append(reasons, fmt.Sprintf("CGPA below minimum (%g)", *drive.MinCGPA))
		}
		if drive.MaxBacklogs != nil && snapshot.ActiveBacklogs > *drive.MaxBacklogs {
			reasons = append(reasons, fmt.Sprintf("Active backlogs exceed limit (%d)", *drive.MaxBacklogs))
		}
		if len(drive.AllowedBranches) > 0 && !branchAllowed(drive.AllowedBranches, snapshot.Branch) {
			reasons = append(reasons, "Branch not eligible")
		}
	}

	if alreadyApplied {
		reasons = append(reasons, "Already applied")
	}

	return models.EligibilityResult{
		Eligible: len(reasons) == 0,
		Reasons:  reasons,
	}
}

// CheckEligibility short-circuits on the first failing rule and returns
// it as a rejection, for apply validation where one reason is enough.
// The placed and duplicate checks are handled separately by Apply
// because their messages differ; this covers the academic rules only.
func CheckEligibility(snapshot *models.AcademicSnapshot, drive *models.Drive) error {
	if drive.MinCGPA != nil && snapshot.CGPA < *drive.MinCGPA {
		return rejectf("Minimum CGPA requirement is %g. Your CGPA: %g", *drive.MinCGPA, snapshot.CGPA)
	}

	if drive.MaxBacklogs != nil && snapshot.ActiveBacklogs > *drive.MaxBacklogs {
		return rejectf("Maximum allowed backlogs: %d. Your active backlogs: %d", *drive.MaxBacklogs, snapshot.ActiveBacklogs)
	}

	if len(drive.AllowedBranches) > 0 && !branchAllowed(drive.AllowedBranches, snapshot.Branch) {
		return reject("Your branch is not eligible for this drive")
	}

	return nil
}

func branchAllowed(allowed []string, branch string) bool {
	for _, b := range allowed {
		if b == branch {
			return true
		}
	}
	return false
}
