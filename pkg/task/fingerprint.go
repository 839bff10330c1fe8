package task

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint returns a stable content hash of a task list. Two lists with
// the same tasks in the same order, with the same dependency order, hash
// equal. It is used as the cache key component for analysis results.
func Fingerprint(tasks []Task) string {
	d := xxhash.New()
	var buf [8]byte
	writeInt := func(v int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(int64(v)))
		_, _ = d.Write(buf[:])
	}

	writeInt(len(tasks))
	for _, t := range tasks {
		writeInt(t.ID)
		writeInt(len(t.Title))
		_, _ = d.WriteString(t.Title)
		writeInt(len(t.Dependencies))
		for _, dep := range t.Dependencies {
			writeInt(dep)
		}
	}
	return fmt.Sprintf("%016x", d.Sum64())
}
