// Package motif finds and counts motifs in a set of sequences indexed by a
// generalized suffix tree. It is the layer between the sfx commands and the
// suffixtree package.
package motif

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"

	"github.com/sbliven/biojava-sub014/config"
	"github.com/sbliven/biojava-sub014/internal/cache"
	"github.com/sbliven/biojava-sub014/internal/seqio"
	"github.com/sbliven/biojava-sub014/internal/suffixtree"
	"github.com/vmihailenco/msgpack/v4"
)

// Hit is one occurrence of a query.
type Hit struct {
	// Sequence is the name of the sequence the hit is in
	Sequence string `json:"sequence" msgpack:"sequence"`

	// Offset is the hit's start within Sequence
	Offset int `json:"offset" msgpack:"offset"`

	// Position is the hit's start across all sequences, terminators included
	Position int `json:"position" msgpack:"position"`
}

// Result is what a session knows about one query.
type Result struct {
	Query string `json:"query" msgpack:"query"`

	Present bool `json:"present" msgpack:"present"`

	// Count is the number of, possibly overlapping, occurrences
	Count int `json:"count" msgpack:"count"`

	// CountNoOverlap is the number of occurrences at least MinSeparation apart
	CountNoOverlap int `json:"countNoOverlap" msgpack:"countNoOverlap"`

	MinSeparation int `json:"minSeparation" msgpack:"minSeparation"`

	// Hits are the occurrences, only filled by Find
	Hits []Hit `json:"hits,omitempty" msgpack:"hits,omitempty"`
}

// Stats summarizes a session's sequences and tree.
type Stats struct {
	Sequences   int                    `json:"sequences"`
	Length      int                    `json:"length"`
	Tree        suffixtree.Stats       `json:"tree"`
	Frequencies suffixtree.Frequencies `json:"frequencies"`
}

// Session is one tree over a set of records, with an optional cache of
// query results.
type Session struct {
	tree  *suffixtree.Tree
	cache cache.Cache
	conf  *config.Config

	// fingerprint identifies the records so cached results are never
	// shared between different inputs
	fingerprint string

	names []string
}

// NewSession validates records and builds a tree over them. c may be nil.
func NewSession(records []seqio.Record, conf *config.Config, c cache.Cache) (*Session, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("failed to build a tree: no sequences")
	}

	term, err := conf.TermChar()
	if err != nil {
		return nil, err
	}
	alpha, err := seqio.Alphabet(conf.Alphabet)
	if err != nil {
		return nil, err
	}

	tree := suffixtree.New(term)
	if conf.Verbose {
		tree.SetLogger(stderr)
	}

	hash := md5.New()
	s := &Session{tree: tree, cache: c, conf: conf}
	for _, rec := range records {
		rec = seqio.Normalize(rec, conf.CaseSensitive)
		if err := seqio.Validate(rec, alpha, term); err != nil {
			return nil, err
		}
		if err := tree.AddSequence(string(rec.Seq), rec.Name, false); err != nil {
			return nil, fmt.Errorf("failed to add %s to the tree: %v", rec.Name, err)
		}

		hash.Write([]byte(rec.Name))
		hash.Write([]byte{term})
		hash.Write(rec.Seq)
		hash.Write([]byte{term})
		s.names = append(s.names, rec.Name)
	}
	s.fingerprint = hex.EncodeToString(hash.Sum(nil))

	return s, nil
}

// Tree returns the session's suffix tree.
func (s *Session) Tree() *suffixtree.Tree {
	return s.tree
}

// Names returns the names of the session's sequences in the order added.
func (s *Session) Names() []string {
	return s.names
}

// Find returns the counts of query and every hit.
func (s *Session) Find(query string, minSep int) (Result, error) {
	return s.query("find", query, minSep, true)
}

// Count returns the counts of query.
func (s *Session) Count(query string, minSep int) (Result, error) {
	return s.query("count", query, minSep, false)
}

// Describe maps a global position back to its sequence.
func (s *Session) Describe(pos int) (Hit, error) {
	name, offset, err := s.tree.Describe(pos)
	if err != nil {
		return Hit{}, err
	}
	return Hit{Sequence: name, Offset: offset, Position: pos}, nil
}

// Stats returns a summary of the session's sequences and tree.
func (s *Session) Stats() Stats {
	return Stats{
		Sequences:   s.tree.SequenceCount(),
		Length:      s.tree.Len(),
		Tree:        s.tree.Stats(),
		Frequencies: s.tree.Store().BaseFrequencies(),
	}
}

func (s *Session) query(op, query string, minSep int, hits bool) (Result, error) {
	if !s.conf.CaseSensitive {
		query = string(bytes.ToUpper([]byte(query)))
	}
	if query == "" {
		return Result{}, fmt.Errorf("empty query")
	}
	if minSep <= 0 {
		minSep = len(query)
	}

	key := cache.Key(s.fingerprint, op, query, strconv.Itoa(minSep))
	if r, ok := s.cached(key); ok {
		return r, nil
	}

	r := Result{
		Query:         query,
		MinSeparation: minSep,
	}
	loc := s.tree.Locate(query)
	r.Present = loc.Present()
	if r.Present {
		positions := s.tree.Positions(query)
		r.Count = len(positions)
		r.CountNoOverlap = s.tree.CountNoOverlap(query, minSep)

		if hits {
			for _, p := range positions {
				h, err := s.Describe(p)
				if err != nil {
					return Result{}, fmt.Errorf("failed to describe hit of %s at %d: %v", query, p, err)
				}
				r.Hits = append(r.Hits, h)
			}
		}
	}

	s.store(key, r)
	return r, nil
}

// cached returns the result stored under key, if any.
func (s *Session) cached(key string) (Result, bool) {
	if s.cache == nil {
		return Result{}, false
	}

	b, err := s.cache.Get(key)
	if err != nil {
		var notFound cache.KeyNotFound
		var expired cache.KeyExpired
		if !errors.As(err, &notFound) && !errors.As(err, &expired) {
			stderr.Printf("warning: failed to read cache: %v", err)
		}
		return Result{}, false
	}

	var r Result
	if err := msgpack.Unmarshal(b, &r); err != nil {
		stderr.Printf("warning: failed to decode cached result: %v", err)
		return Result{}, false
	}
	return r, true
}

// store caches r under key.
func (s *Session) store(key string, r Result) {
	if s.cache == nil {
		return
	}

	b, err := msgpack.Marshal(&r)
	if err != nil {
		stderr.Printf("warning: failed to encode result: %v", err)
		return
	}
	if err := s.cache.Set(key, b); err != nil {
		var full cache.CacheIsFull
		if !errors.As(err, &full) {
			stderr.Printf("warning: failed to write cache: %v", err)
		}
	}
}
