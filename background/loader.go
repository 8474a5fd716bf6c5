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
	"os"
	"runtime"
	"sync"

	"github.com/ctessum/requestcache"
)

// Loader reads processed background tables from disk, caching the
// parsed result per path so that concurrent simulation requests share
// a single parse. It is safe for concurrent use.
type Loader struct {
	// CacheSize is the number of parsed tables to hold in memory.
	// If zero, 4 is used.
	CacheSize int

	cache    *requestcache.Cache
	loadOnce sync.Once
}

// Table returns the parsed background table at path.
func (l *Loader) Table(ctx context.Context, path string) (*Table, error) {
	l.loadOnce.Do(func() {
		size := l.CacheSize
		if size == 0 {
			size = 4
		}
		l.cache = requestcache.NewCache(func(ctx context.Context, request interface{}) (interface{}, error) {
			f, err := os.Open(request.(string))
			if err != nil {
				return nil, err
			}
			defer f.Close()
			return ReadTable(f)
		}, runtime.GOMAXPROCS(-1),
			requestcache.Deduplicate(), requestcache.Memory(size))
	})
	req := l.cache.NewRequest(ctx, path, "backgroundtable_"+path)
	result, err := req.Result()
	if err != nil {
		return nil, err
	}
	return result.(*Table), nil
}
