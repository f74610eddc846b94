// Package metric tracks viewer counters for the status endpoint.
package metric

import (
	"container/list"
	"expvar"
	"strings"
	"time"
)

// ExpOpenedTotal counts successful email opens since process start.
var ExpOpenedTotal = expvar.NewInt("emlee.openedTotal")

// TickerFunc is the function signature accepted by AddTickerFunc, called
// once per minute.
type TickerFunc func()

var tickerFuncChan = make(chan TickerFunc)

var openedHistory = list.New()

func init() {
	go metricsTicker()

	// Minute-by-minute open counts for the status page chart.
	expvar.Publish("emlee.openedHistory", expvar.Func(func() interface{} {
		return joinStringList(openedHistory)
	}))
	AddTickerFunc(func() {
		Push(openedHistory, ExpOpenedTotal)
	})
}

// AddTickerFunc adds a callback to the list of funcs invoked each minute.
func AddTickerFunc(f TickerFunc) {
	tickerFuncChan <- f
}

// Push adds the metric to the end of the list and returns a comma separated
// string of the previous 61 entries.  61 rather than 60 because the client
// charts deltas between samples.
func Push(history *list.List, ev expvar.Var) string {
	history.PushBack(ev.String())
	if history.Len() > 61 {
		history.Remove(history.Front())
	}
	return joinStringList(history)
}

// metricsTicker calls the current list of TickerFuncs once per minute.
func metricsTicker() {
	funcs := make([]TickerFunc, 0)
	ticker := time.NewTicker(time.Minute)
	for {
		select {
		case f := <-tickerFuncChan:
			funcs = append(funcs, f)
		case <-ticker.C:
			for _, f := range funcs {
				f()
			}
		}
	}
}

// joinStringList flattens a list of strings into a single comma separated
// string.
func joinStringList(listOfStrings *list.List) string {
	tokens := make([]string, 0, listOfStrings.Len())
	for e := listOfStrings.Front(); e != nil; e = e.Next() {
		tokens = append(tokens, e.Value.(string))
	}
	return strings.Join(tokens, ",")
}
