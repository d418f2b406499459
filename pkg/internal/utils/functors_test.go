package utils_test

import (
	"reflect"
	"strconv"
	"testing"

	"github.com/joeydtaylor/ppglab/pkg/internal/utils"
)

func TestMap(t *testing.T) {
	elems := []int{1, 2, 3, 4}
	doubledElems := utils.Map(elems, func(i int) int {
		return i * 2
	})

	expected := []int{2, 4, 6, 8}
	if !reflect.DeepEqual(doubledElems, expected) {
		t.Errorf("Expected %v, got %v", expected, doubledElems)
	}
}

func TestMapTo(t *testing.T) {
	got := utils.MapTo([]int{1, 20}, strconv.Itoa)
	if !reflect.DeepEqual(got, []string{"1", "20"}) {
		t.Errorf("unexpected %v", got)
	}
}

func TestFilter(t *testing.T) {
	elems := []int{1, 2, 3, 4, 5, 6}
	filteredElems := utils.Filter(elems, func(i int) bool {
		return i%2 == 0
	})

	expected := []int{2, 4, 6}
	if !reflect.DeepEqual(filteredElems, expected) {
		t.Errorf("Expected %v, got %v", expected, filteredElems)
	}
}

func TestContains(t *testing.T) {
	if !utils.Contains([]string{"a", "b"}, "b") {
		t.Errorf("expected b to be found")
	}
	if utils.Contains([]string{"a", "b"}, "c") {
		t.Errorf("did not expect c to be found")
	}
}

func TestMedianAndMAD(t *testing.T) {
	tests := []struct {
		in     []float64
		median float64
		mad    float64
	}{
		{nil, 0, 0},
		{[]float64{3}, 3, 0},
		{[]float64{5, 1, 3}, 3, 2},
		{[]float64{4, 1, 2, 3}, 2.5, 1},
	}
	for _, tt := range tests {
		in := append([]float64(nil), tt.in...)
		if got := utils.Median(in); got != tt.median {
			t.Errorf("Median(%v) = %v, want %v", tt.in, got, tt.median)
		}
		if got := utils.MAD(in); got != tt.mad {
			t.Errorf("MAD(%v) = %v, want %v", tt.in, got, tt.mad)
		}
		if !reflect.DeepEqual(in, tt.in) && tt.in != nil {
			t.Errorf("input was modified: %v", in)
		}
	}
}

func TestDiffLinspace(t *testing.T) {
	if got := utils.Diff([]float64{1, 4, 9}); !reflect.DeepEqual(got, []float64{3, 5}) {
		t.Errorf("Diff = %v", got)
	}
	if got := utils.Diff([]float64{1}); got != nil {
		t.Errorf("Diff of one value = %v", got)
	}
	ls := utils.Linspace(0, 1, 5)
	if !reflect.DeepEqual(ls, []float64{0, 0.25, 0.5, 0.75, 1}) {
		t.Errorf("Linspace = %v", ls)
	}
}

func TestGenerateUniqueHash(t *testing.T) {
	if utils.GenerateUniqueHash() == utils.GenerateUniqueHash() {
		t.Errorf("unique hashes collided")
	}
}
