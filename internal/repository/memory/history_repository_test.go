package memory

import (
	"fmt"
	"testing"

	"github.com/google/uuid"

	"decision-framework-be/internal/entity"
	"decision-framework-be/internal/model"
)

func newResult(description string) *model.DecisionResult {
	return &model.DecisionResult{
		Situation: entity.Situation{Id: uuid.New(), Description: description},
	}
}

func TestHistoryRepositorySaveAndGet(t *testing.T) {
	repo := NewHistoryRepository(10)

	result := newResult("first")
	repo.Save(result)

	got, ok := repo.Get(result.Situation.Id)
	if !ok {
		t.Fatal("Get returned not found for a saved result")
	}
	if got.Situation.Description != "first" {
		t.Errorf("Description = %q", got.Situation.Description)
	}

	if _, ok := repo.Get(uuid.New()); ok {
		t.Error("Get returned a result for an unknown id")
	}
}

func TestHistoryRepositoryRecentNewestFirst(t *testing.T) {
	repo := NewHistoryRepository(10)

	var saved []*model.DecisionResult
	for i := 0; i < 3; i++ {
		r := newResult(fmt.Sprintf("decision %d", i))
		repo.Save(r)
		saved = append(saved, r)
	}

	recent := repo.Recent(2)
	if len(recent) != 2 {
		t.Fatalf("len(recent) = %d, want 2", len(recent))
	}
	if recent[0].Situation.Id != saved[2].Situation.Id || recent[1].Situation.Id != saved[1].Situation.Id {
		t.Error("Recent is not newest first")
	}

	all := repo.Recent(0)
	if len(all) != 3 {
		t.Errorf("Recent(0) = %d results, want all 3", len(all))
	}
}

func TestHistoryRepositoryEvictsOldest(t *testing.T) {
	repo := NewHistoryRepository(2)

	first := newResult("first")
	repo.Save(first)
	repo.Save(newResult("second"))
	repo.Save(newResult("third"))

	if _, ok := repo.Get(first.Situation.Id); ok {
		t.Error("oldest result still retrievable past the cap")
	}
	if len(repo.Recent(10)) != 2 {
		t.Errorf("Recent = %d results, want the cap of 2", len(repo.Recent(10)))
	}
}
