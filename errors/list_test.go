// Copyright 2024 Terramate GmbH
// SPDX-License-Identifier: MPL-2.0

package errors_test

import (
	stderrors "errors"
	stdfmt "fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/madlambda/spells/assert"
	"github.com/terramate-io/rustversion/errors"
)

func TestList(t *testing.T) {
	t.Parallel()

	type testcase struct {
		name     string
		list     *errors.List
		wantNil  bool
		wantMsg  string
		wantErrs []string
	}

	for _, tc := range []testcase{
		{
			name:    "empty",
			list:    errors.L(),
			wantNil: true,
		},
		{
			name:    "nils are dropped",
			list:    errors.L(nil, nil),
			wantNil: true,
		},
		{
			name:     "single item",
			list:     errors.L(E(parseError, "bad spec")),
			wantMsg:  "parse error: bad spec",
			wantErrs: []string{"parse error: bad spec"},
		},
		{
			name: "items that are not *Error are kept but not listed",
			list: errors.L(
				stderrors.New("plain"),
				stdfmt.Errorf("wrapped: %w", E(detectError, "no rustc")),
				E(parseError, "bad date"),
			),
			wantMsg:  "plain (and 2 elided errors)",
			wantErrs: []string{"detect error: no rustc", "parse error: bad date"},
		},
		{
			name: "appended lists are flattened",
			list: errors.L(
				E(parseError, "first"),
				errors.L(E(parseError, "second"), nil, E(detectError, "third")),
				errors.L(),
			),
			wantMsg:  "parse error: first (and 2 elided errors)",
			wantErrs: []string{"parse error: first", "parse error: second", "detect error: third"},
		},
	} {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := tc.list.AsError()
			if tc.wantNil {
				if err != nil {
					t.Fatalf("got error %v but want nil", err)
				}
				assert.EqualStrings(t, "", tc.list.Error())
				assert.EqualInts(t, 0, len(tc.list.Errors()))
				return
			}

			assert.Error(t, err)
			assert.EqualStrings(t, tc.wantMsg, err.Error())

			var got []string
			for _, e := range tc.list.Errors() {
				got = append(got, e.Error())
			}
			if diff := cmp.Diff(tc.wantErrs, got); diff != "" {
				t.Fatalf("listed errors mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestListIsMatchesAnyItem(t *testing.T) {
	t.Parallel()

	inner := errors.L(E(detectError, "no rustc"))
	list := errors.L(E(parseError, "bad spec"), inner)

	assert.IsTrue(t, stderrors.Is(list, errors.E(parseError)))
	assert.IsTrue(t, stderrors.Is(list, errors.E(detectError)))
	assert.IsTrue(t, !stderrors.Is(list, errors.E(errors.Kind("other"))))
}
