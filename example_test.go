package category_test

import (
	"context"
	"fmt"
	"log"

	category "github.com/FrenchMajesty/diary-category"
	"github.com/FrenchMajesty/diary-category/pkg/testutil"
)

// Example shows classification with an injected scorer. In production the
// scorer is omitted and the model is loaded from Config.ModelDir.
func Example() {
	clf, err := category.NewClassifier(category.Config{
		Scorer: &testutil.MockScorer{
			ScoresFunc: testutil.FixedScores(2.5, 0.3, 0.1, 0.9, -0.4),
		},
	})
	if err != nil {
		log.Fatal(err)
	}
	defer clf.Close()

	result, err := clf.Predict(context.Background(), "오늘 가족들과 저녁을 먹었다")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(result.Label)
	// Output: family
}
