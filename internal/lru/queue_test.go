// Copyright 2023 Sneller, Inc.
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

package lru

import (
	"math/rand"
	"sort"
	"testing"
)

type testItem struct {
	v   int
	idx int
}

func (t *testItem) Less(other *testItem) bool { return t.v < other.v }
func (t *testItem) SetIndex(i int)             { t.idx = i }
func (t *testItem) Index() int                 { return t.idx }

func TestQueueOrdersLikeSort(t *testing.T) {
	q := New[*testItem](1000)
	items := make([]*testItem, 0, 1000)
	for len(items) < cap(items) {
		it := &testItem{v: rand.Int()}
		items = append(items, it)
		q.Push(it)
	}
	var got []int
	for q.Len() > 0 {
		got = append(got, q.Pop().v)
	}
	if !sort.IntsAreSorted(got) {
		t.Fatal("not sorted")
	}
}

func TestQueueFixAfterMutation(t *testing.T) {
	q := New[*testItem](0)
	items := make([]*testItem, 8)
	for i := range items {
		items[i] = &testItem{v: i}
		q.Push(items[i])
	}
	// mutate an item's key in place and re-fix it.
	items[6].v = -1
	q.Fix(items[6].Index())
	if q.Min() != items[6] {
		t.Fatal("Fix did not restore heap-min invariant")
	}
}

func TestQueueRemoveAtArbitraryIndex(t *testing.T) {
	q := New[*testItem](0)
	items := make([]*testItem, 10)
	for i := range items {
		items[i] = &testItem{v: i}
		q.Push(items[i])
	}
	victim := items[5]
	idx := victim.Index()
	removed := q.RemoveAt(idx)
	if removed != victim {
		t.Fatalf("RemoveAt(%d) returned %v, want %v", idx, removed.v, victim.v)
	}
	if victim.Index() != -1 {
		t.Fatal("removed item's index not cleared")
	}
	var got []int
	for q.Len() > 0 {
		got = append(got, q.Pop().v)
	}
	if !sort.IntsAreSorted(got) {
		t.Fatal("not sorted after RemoveAt")
	}
	for _, v := range got {
		if v == victim.v {
			t.Fatal("removed value still present")
		}
	}
}

func TestQueueLenAndMinOnEmptyPanics(t *testing.T) {
	q := New[*testItem](0)
	if q.Len() != 0 {
		t.Fatal("expected empty queue")
	}
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on Min of empty queue")
		}
	}()
	q.Min()
}
