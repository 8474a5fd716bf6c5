/*
Copyright © 2026 the RiverScope authors.
This file is part of RiverScope.

RiverScope is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

RiverScope is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with RiverScope.  If not, see <http://www.gnu.org/licenses/>.
*/

package background

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
)

func TestLoader(t *testing.T) {
	dir, err := ioutil.TempDir("", "riverscope")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "medians.csv")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := WriteTable(f, Aggregate(readTestSamples(t))); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	l := new(Loader)
	ctx := context.Background()
	a, err := l.Table(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	if a.Region("VA") == nil {
		t.Error("loaded table has no VA data")
	}

	// The second load must come from the cache.
	b, err := l.Table(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("second load was not served from the cache")
	}
}

func TestLoaderMissingFile(t *testing.T) {
	l := new(Loader)
	if _, err := l.Table(context.Background(), "testdata/no_such_file.csv"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
