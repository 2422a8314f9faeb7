package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync"
	"testing"

	"benishangul-police/idregistry/internal/apperrors"
	"benishangul-police/idregistry/internal/common"
	"benishangul-police/idregistry/internal/models/dtos/requests"
)

var idNumberPattern = regexp.MustCompile(`^BGR-POL-\d{5}$`)

func TestIssuanceService_Issue_AssignsFormattedNumber(t *testing.T) {
	store := setupTestStore(t)
	service := NewIssuanceService(store, nil)

	member, err := service.Issue(context.Background(), &requests.MemberRequest{
		FullNameAm: "አበበ በቀለ",
		FullNameEn: "Abebe Bekele",
		Phone:      "0911000000",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !idNumberPattern.MatchString(member.IDNumber) {
		t.Errorf("Unexpected id number format: %q", member.IDNumber)
	}
	if member.IDNumber != "BGR-POL-00001" {
		t.Errorf("Expected first number BGR-POL-00001, got %q", member.IDNumber)
	}
	if member.ID == 0 {
		t.Error("Expected surrogate key to be assigned")
	}
}

func TestIssuanceService_Issue_RequiresName(t *testing.T) {
	store := setupTestStore(t)
	service := NewIssuanceService(store, nil)

	_, err := service.Issue(context.Background(), &requests.MemberRequest{Phone: "0911"})
	if !apperrors.HasKind(err, apperrors.KindValidation) {
		t.Fatalf("Expected validation error, got %v", err)
	}
}

func TestIssuanceService_ConcurrentIssue_UniqueNumbers(t *testing.T) {
	store := setupTestStore(t)
	service := NewIssuanceService(store, nil)

	const n = 20
	results := make(chan string, n)
	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			member, err := service.Issue(context.Background(), &requests.MemberRequest{
				FullNameEn: fmt.Sprintf("Officer %d", i),
			})
			if err != nil {
				t.Errorf("issue %d failed: %v", i, err)
				return
			}
			results <- member.IDNumber
		}(i)
	}
	wg.Wait()
	close(results)

	seen := map[string]bool{}
	for num := range results {
		if seen[num] {
			t.Errorf("Duplicate id number issued: %s", num)
		}
		seen[num] = true
		if !idNumberPattern.MatchString(num) {
			t.Errorf("Malformed id number: %s", num)
		}
	}
	if len(seen) != n {
		t.Errorf("Expected %d unique numbers, got %d", n, len(seen))
	}
}

func TestIssuanceService_NumberNotReusedAfterDelete(t *testing.T) {
	store := setupTestStore(t)
	members, _, _, _ := testRepos(t, store)
	service := NewIssuanceService(store, nil)

	ctx := context.Background()

	first, err := service.Issue(ctx, &requests.MemberRequest{FullNameEn: "First"})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	// Delete the highest-numbered record; the counter must not regress.
	if err := members.Delete(ctx, first.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	second, err := service.Issue(ctx, &requests.MemberRequest{FullNameEn: "Second"})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if second.IDNumber == first.IDNumber {
		t.Errorf("Number %s was reissued after deletion", first.IDNumber)
	}
	if second.IDNumber != "BGR-POL-00002" {
		t.Errorf("Expected BGR-POL-00002, got %s", second.IDNumber)
	}
}

// Mock translator
type mockTranslator struct {
	translateFunc func(ctx context.Context, text, targetLang string) (string, error)
}

func (m *mockTranslator) Translate(ctx context.Context, text, targetLang string) (string, error) {
	return m.translateFunc(ctx, text, targetLang)
}

var _ common.Translator = (*mockTranslator)(nil)

func TestIssuanceService_FillsMissingTranslation(t *testing.T) {
	store := setupTestStore(t)

	translator := &mockTranslator{
		translateFunc: func(_ context.Context, text, targetLang string) (string, error) {
			if targetLang == "en" {
				return "Inspector", nil
			}
			return text, nil
		},
	}
	service := NewIssuanceService(store, translator)

	member, err := service.Issue(context.Background(), &requests.MemberRequest{
		FullNameAm: "ሙሉ ስም",
		FullNameEn: "Full Name",
		RankAm:     "ኢንስፔክተር",
	})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if member.RankEn != "Inspector" {
		t.Errorf("Expected translated rank, got %q", member.RankEn)
	}
}

func TestIssuanceService_TranslationFailureKeepsSourceText(t *testing.T) {
	store := setupTestStore(t)

	translator := &mockTranslator{
		translateFunc: func(_ context.Context, _, _ string) (string, error) {
			return "", errors.New("translator down")
		},
	}
	service := NewIssuanceService(store, translator)

	member, err := service.Issue(context.Background(), &requests.MemberRequest{
		RankAm:     "ኢንስፔክተር",
		FullNameAm: "ሙሉ ስም",
	})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if member.RankEn != "ኢንስፔክተር" {
		t.Errorf("Expected source text fallback, got %q", member.RankEn)
	}
}
