package service

import (
	"reflect"
	"testing"

	"github.com/Risingdell/Placement-mangement/internal/models"
)

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

func TestEvaluateEligibility_AllRulesPass(t *testing.T) {
	snapshot := &models.AcademicSnapshot{CGPA: 8.5, ActiveBacklogs: 0, Branch: "CSE"}
	drive := &models.Drive{
		MinCGPA:         floatPtr(7.0),
		MaxBacklogs:     intPtr(0),
		AllowedBranches: []string{"CSE", "ISE"},
	}

	result := EvaluateEligibility(snapshot, drive, false, false)
	if !result.Eligible {
		t.Fatalf("expected eligible, got reasons %v", result.Reasons)
	}
	if len(result.Reasons) != 0 {
		t.Fatalf("expected no reasons, got %v", result.Reasons)
	}
}

func TestEvaluateEligibility_CollectsAllReasons(t *testing.T) {
	snapshot := &models.AcademicSnapshot{CGPA: 5.0, ActiveBacklogs: 3, Branch: "ME"}
	drive := &models.Drive{
		MinCGPA:         floatPtr(7.0),
		MaxBacklogs:     intPtr(0),
		AllowedBranches: []string{"CSE"},
	}

	result := EvaluateEligibility(snapshot, drive, true, true)
	if result.Eligible {
		t.Fatal("expected ineligible")
	}

	want := []string{
		"Already placed",
		"CGPA below minimum (7)",
		"Active backlogs exceed limit (0)",
		"Branch not eligible",
		"Already applied",
	}
	if !reflect.DeepEqual(result.Reasons, want) {
		t.Fatalf("expected reasons %v, got %v", want, result.Reasons)
	}
}

func TestEvaluateEligibility_BoundaryCGPA(t *testing.T) {
	drive := &models.Drive{MinCGPA: floatPtr(7.0)}

	exact := &models.AcademicSnapshot{CGPA: 7.0, Branch: "CSE"}
	if result := EvaluateEligibility(exact, drive, false, false); !result.Eligible {
		t.Fatalf("CGPA exactly at minimum must pass, got %v", result.Reasons)
	}

	below := &models.AcademicSnapshot{CGPA: 6.99, Branch: "CSE"}
	if result := EvaluateEligibility(below, drive, false, false); result.Eligible {
		t.Fatal("CGPA below minimum must fail")
	}
}

func TestEvaluateEligibility_BoundaryBacklogs(t *testing.T) {
	drive := &models.Drive{MaxBacklogs: intPtr(2)}

	atLimit := &models.AcademicSnapshot{ActiveBacklogs: 2, Branch: "CSE"}
	if result := EvaluateEligibility(atLimit, drive, false, false); !result.Eligible {
		t.Fatalf("backlogs at limit must pass, got %v", result.Reasons)
	}

	overLimit := &models.AcademicSnapshot{ActiveBacklogs: 3, Branch: "CSE"}
	if result := EvaluateEligibility(overLimit, drive, false, false); result.Eligible {
		t.Fatal("backlogs over limit must fail")
	}
}

func TestEvaluateEligibility_EmptyBranchListAllowsAll(t *testing.T) {
	snapshot := &models.AcademicSnapshot{CGPA: 9.0, Branch: "Obscure Branch"}

	for _, branches := range [][]string{nil, {}} {
		drive := &models.Drive{AllowedBranches: branches}
		if result := EvaluateEligibility(snapshot, drive, false, false); !result.Eligible {
			t.Fatalf("empty allow-list must admit every branch, got %v", result.Reasons)
		}
	}
}

func TestEvaluateEligibility_NoCriteriaMeansEligible(t *testing.T) {
	snapshot := &models.AcademicSnapshot{CGPA: 0, ActiveBacklogs: 99, Branch: ""}
	drive := &models.Drive{}

	if result := EvaluateEligibility(snapshot, drive, false, false); !result.Eligible {
		t.Fatalf("drive without criteria must accept everyone, got %v", result.Reasons)
	}
}

func TestEvaluateEligibility_NilSnapshotSkipsAcademicRules(t *testing.T) {
	drive := &models.Drive{MinCGPA: floatPtr(9.9), AllowedBranches: []string{"CSE"}}

	result := EvaluateEligibility(nil, drive, false, true)
	want := []string{"Already placed"}
	if !reflect.DeepEqual(result.Reasons, want) {
		t.Fatalf("expected only placed reason, got %v", result.Reasons)
	}
}

func TestEvaluateEligibility_Idempotent(t *testing.T) {
	snapshot := &models.AcademicSnapshot{CGPA: 6.0, ActiveBacklogs: 1, Branch: "ECE"}
	drive := &models.Drive{
		MinCGPA:         floatPtr(7.0),
		MaxBacklogs:     intPtr(0),
		AllowedBranches: []string{"CSE"},
	}

	first := EvaluateEligibility(snapshot, drive, false, false)
	second := EvaluateEligibility(snapshot, drive, false, false)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("evaluation must be deterministic: %v vs %v", first, second)
	}
}

func TestCheckEligibility_ShortCircuitsOnFirstRule(t *testing.T) {
	snapshot := &models.AcademicSnapshot{CGPA: 5.0, ActiveBacklogs: 3, Branch: "ME"}
	drive := &models.Drive{
		MinCGPA:         floatPtr(7.5),
		MaxBacklogs:     intPtr(0),
		AllowedBranches: []string{"CSE"},
	}

	err := CheckEligibility(snapshot, drive)
	reason, ok := IsRejection(err)
	if !ok {
		t.Fatalf("expected rejection, got %v", err)
	}
	if reason != "Minimum CGPA requirement is 7.5. Your CGPA: 5" {
		t.Fatalf("unexpected reason %q", reason)
	}
}

func TestCheckEligibility_BacklogMessage(t *testing.T) {
	snapshot := &models.AcademicSnapshot{CGPA: 9.0, ActiveBacklogs: 2, Branch: "CSE"}
	drive := &models.Drive{MaxBacklogs: intPtr(1)}

	err := CheckEligibility(snapshot, drive)
	reason, ok := IsRejection(err)
	if !ok {
		t.Fatalf("expected rejection, got %v", err)
	}
	if reason != "Maximum allowed backlogs: 1. Your active backlogs: 2" {
		t.Fatalf("unexpected reason %q", reason)
	}
}

func TestCheckEligibility_BranchMessage(t *testing.T) {
	snapshot := &models.AcademicSnapshot{CGPA: 9.0, Branch: "ME"}
	drive := &models.Drive{AllowedBranches: []string{"CSE", "ISE"}}

	err := CheckEligibility(snapshot, drive)
	reason, ok := IsRejection(err)
	if !ok {
		t.Fatalf("expected rejection, got %v", err)
	}
	if reason != "Your branch is not eligible for this drive" {
		t.Fatalf("unexpected reason %q", reason)
	}
}

func TestCheckEligibility_Passes(t *testing.T) {
	snapshot := &models.AcademicSnapshot{CGPA: 8.0, ActiveBacklogs: 0, Branch: "CSE"}
	drive := &models.Drive{
		MinCGPA:         floatPtr(8.0),
		MaxBacklogs:     intPtr(0),
		AllowedBranches: []string{"CSE"},
	}

	if err := CheckEligibility(snapshot, drive); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}
