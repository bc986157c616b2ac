package training

import (
	"math/rand"
	"sort"
)

// stratifiedSplit partitions example indices into train and holdout
// sets, drawing the holdout fraction from each label group separately so
// class imbalance cannot skew the split. Groups with more than one
// member contribute at least one holdout row when testFraction > 0.
func stratifiedSplit(labels []int, testFraction float64, rng *rand.Rand) (train, test []int) {
	byClass := groupByClass(labels)
	for _, class := range sortedClasses(byClass) {
		idx := append([]int(nil), byClass[class]...)
		rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })

		nTest := int(float64(len(idx)) * testFraction)
		if nTest < 1 && len(idx) > 1 && testFraction > 0 {
			nTest = 1
		}
		test = append(test, idx[:nTest]...)
		train = append(train, idx[nTest:]...)
	}
	sort.Ints(train)
	sort.Ints(test)
	return train, test
}

// stratifiedFolds assigns example indices to k folds, spreading every
// label group round-robin across folds after a shuffle.
func stratifiedFolds(labels []int, folds int, rng *rand.Rand) [][]int {
	out := make([][]int, folds)
	byClass := groupByClass(labels)
	for _, class := range sortedClasses(byClass) {
		idx := append([]int(nil), byClass[class]...)
		rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
		for i, example := range idx {
			out[i%folds] = append(out[i%folds], example)
		}
	}
	for _, fold := range out {
		sort.Ints(fold)
	}
	return out
}

func groupByClass(labels []int) map[int][]int {
	byClass := make(map[int][]int)
	for i, label := range labels {
		byClass[label] = append(byClass[label], i)
	}
	return byClass
}

func sortedClasses(byClass map[int][]int) []int {
	classes := make([]int, 0, len(byClass))
	for class := range byClass {
		classes = append(classes, class)
	}
	sort.Ints(classes)
	return classes
}
