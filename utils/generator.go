package utils

import (
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"
)

const shortCodeLength = 6
const letterBytes = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// *rand.Rand is not safe for concurrent use.
var (
	seededRand = rand.New(rand.NewSource(time.Now().UnixNano()))
	randMu     sync.Mutex

	cartSeq atomic.Uint64
)

func RandomCode(n int) string {
	randMu.Lock()
	defer randMu.Unlock()

	b := make([]byte, n)
	for i := range b {
		b[i] = letterBytes[seededRand.Intn(len(letterBytes))]
	}
	return string(b)
}

func ShortCode() string {
	return RandomCode(shortCodeLength)
}

// OrderNumber returns an order id of the form ORD-123456.
func OrderNumber() string {
	randMu.Lock()
	n := 100000 + seededRand.Intn(900000)
	randMu.Unlock()
	return fmt.Sprintf("ORD-%d", n)
}

// CartID is time based so repeated adds of one course stay distinct.
func CartID() string {
	return fmt.Sprintf("%d-%d", time.Now().UnixMilli(), cartSeq.Add(1))
}
