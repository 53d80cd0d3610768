package quiz

import (
	"reflect"
	"testing"

	"github.com/powderline/snowgear-backend/internal/catalog"
)

func seedCandidates() []Candidate {
	return []Candidate{
		{
			Product: catalog.Product{ID: "c1", Category: catalog.CategoryBoard, Title: "Budget Board", SalePriceCents: ptrInt(30000)},
			Attrs:   Attrs{Flex: ptrFloat(6), Profile: "camber"},
		},
		{
			Product: catalog.Product{ID: "c2", Category: catalog.CategoryBoard, Title: "Premium Board", SalePriceCents: ptrInt(90000)},
			Attrs:   Attrs{Flex: ptrFloat(9), Profile: "camber"},
		},
		{
			Product: catalog.Product{ID: "c3", Category: catalog.CategoryBoots, Title: "Boots", PriceCents: ptrInt(25000)},
		},
	}
}

func TestRecommendOrdersByScoreDescending(t *testing.T) {
	service := NewService(NewInMemoryRepository(seedCandidates()))

	scored, err := service.Recommend(Answers{
		Category:         QuizCategoryBoard,
		Ability:          AbilityIntermediate,
		Terrain:          TerrainGroomers,
		Flex:             FlexMedium,
		BudgetMaxDollars: 500,
	})
	if err != nil {
		t.Fatalf("recommend failed: %v", err)
	}

	// boots are filtered out by the category resolution (board != boots)
	if len(scored) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(scored))
	}
	if scored[0].ID != "c1" || scored[1].ID != "c2" {
		t.Fatalf("expected on-budget board first, got %v then %v", scored[0].ID, scored[1].ID)
	}
	if scored[0].Score <= scored[1].Score {
		t.Fatalf("ordering must be descending by score: %d vs %d", scored[0].Score, scored[1].Score)
	}
}

func TestRecommendAllCategoriesKeepsFetchOrderOnTies(t *testing.T) {
	// identical candidates produce identical scores; stable sorting keeps
	// fetch order
	twin := Candidate{
		Product: catalog.Product{ID: "t1", Category: catalog.CategoryBoard, Title: "Twin A", SalePriceCents: ptrInt(30000)},
		Attrs:   Attrs{Flex: ptrFloat(6)},
	}
	twin2 := twin
	twin2.ID = "t2"
	twin2.Title = "Twin B"
	service := NewService(NewInMemoryRepository([]Candidate{twin, twin2}))

	a := Answers{Category: QuizCategoryAll, Ability: AbilityIntermediate, Terrain: TerrainAllMountain, Flex: FlexMedium, BudgetMaxDollars: 500}
	scored, err := service.Recommend(a)
	if err != nil {
		t.Fatalf("recommend failed: %v", err)
	}
	if scored[0].ID != "t1" || scored[1].ID != "t2" {
		t.Fatalf("score ties must keep fetch order, got %v, %v", scored[0].ID, scored[1].ID)
	}
}

func TestRecommendIsDeterministic(t *testing.T) {
	service := NewService(NewInMemoryRepository(seedCandidates()))
	a := Answers{Category: QuizCategoryAll, Ability: AbilityBeginner, Terrain: TerrainPark, Flex: FlexSoft, BudgetMaxDollars: 350}

	first, err := service.Recommend(a)
	if err != nil {
		t.Fatalf("recommend failed: %v", err)
	}
	second, _ := service.Recommend(a)

	for i := range first {
		if first[i].ID != second[i].ID || first[i].Score != second[i].Score || !reflect.DeepEqual(first[i].Why, second[i].Why) {
			t.Fatalf("identical answers must yield identical (score, why) per id")
		}
	}
}
