package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/chzyer/readline"

	"github.com/pulse-protocol/pulse-go/pkg/deadline"
	"github.com/pulse-protocol/pulse-go/pkg/events"
	"github.com/pulse-protocol/pulse-go/pkg/publication"
	"github.com/pulse-protocol/pulse-go/pkg/status"
	"github.com/pulse-protocol/pulse-go/pkg/subscription"
	"github.com/pulse-protocol/pulse-go/pkg/waitset"
)

// Monitor drives the interactive console. It simulates the transport
// side (raising status changes through the managers) and the consumer
// side (polling, waiting, callbacks) against one subscription and one
// publication.
type Monitor struct {
	cfg  Config
	subs *subscription.Manager
	pubs *publication.Manager
	sub  *subscription.Subscription
	pub  *publication.Publication
	rl   *readline.Instance

	ws     *waitset.WaitSet
	events map[string]*events.Event

	// watchdog raises deadline misses automatically when feed stops.
	watchdog *deadline.Monitor

	// Simulated transport counters. Absolute values live here; the
	// deltas are derived per report, the way a real transport does it.
	// deadlineTotal is atomic because the watchdog bumps it from its
	// timer goroutine.
	deadlineTotal    atomic.Int32
	alive            int32
	notAlive         int32
	pubDeadlineTotal int32
	pubLostTotal     int32

	callbackOn bool
}

// NewMonitor creates the console around an established subscription and
// publication.
func NewMonitor(
	cfg Config,
	subs *subscription.Manager,
	pubs *publication.Manager,
	sub *subscription.Subscription,
	pub *publication.Publication,
) (*Monitor, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "pulse> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	m := &Monitor{
		cfg:      cfg,
		subs:     subs,
		pubs:     pubs,
		sub:      sub,
		pub:      pub,
		rl:       rl,
		ws:       waitset.New(),
		events:   map[string]*events.Event{},
		watchdog: deadline.NewMonitor(),
	}

	m.watchdog.OnMiss(func(topic string, total, change int32) {
		t := m.deadlineTotal.Add(change)
		m.subs.NotifyDeadlineMissed(topic, status.RequestedDeadlineMissedStatus{
			TotalCount:       t,
			TotalCountChange: change,
		})
		fmt.Fprintf(m.rl.Stdout(), "[watchdog] deadline missed on %s (%d so far)\n", topic, total)
	})

	for name, bind := range map[string]struct {
		listener events.Listener
		kind     status.EventKind
	}{
		"deadline":    {sub.Listener(), status.RequestedDeadlineMissed},
		"liveliness":  {sub.Listener(), status.LivelinessChanged},
		"pubdeadline": {pub.Listener(), status.OfferedDeadlineMissed},
		"publost":     {pub.Listener(), status.LivelinessLost},
	} {
		ev, err := events.NewEvent(bind.listener, bind.kind)
		if err != nil {
			return nil, err
		}
		m.events[name] = ev
		m.ws.Attach(ev)
	}

	return m, nil
}

// Run starts the interactive command loop. It returns when the user
// exits.
func (m *Monitor) Run() {
	defer m.rl.Close()
	defer m.watchdog.CancelAll()

	m.printHelp()

	for {
		line, err := m.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(m.rl.Stdout(), "Exiting...")
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		fields := strings.Fields(input)
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "help", "h", "?":
			m.printHelp()
		case "deadline":
			m.cmdDeadline(args)
		case "live", "liveliness":
			m.cmdLiveliness(args)
		case "pubdeadline":
			m.cmdPubDeadline(args)
		case "publost":
			m.cmdPubLost(args)
		case "watch":
			m.cmdWatch(args)
		case "feed":
			m.cmdFeed()
		case "unwatch":
			m.cmdUnwatch()
		case "status":
			m.cmdStatus()
		case "take":
			m.cmdTake(args)
		case "wait":
			m.cmdWait(args)
		case "callback":
			m.cmdCallback(args)
		case "unread":
			m.cmdUnread()
		case "exit", "quit", "q":
			fmt.Fprintln(m.rl.Stdout(), "Exiting...")
			return
		default:
			fmt.Fprintf(m.rl.Stdout(), "unknown command %q (try help)\n", cmd)
		}
	}
}

func (m *Monitor) printHelp() {
	out := m.rl.Stdout()
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  deadline [n]          raise n requested-deadline-missed reports (default 1)")
	fmt.Fprintln(out, "  live <alive> <lost>   report liveliness counts for the subscriber")
	fmt.Fprintln(out, "  pubdeadline [n]       raise n offered-deadline-missed reports")
	fmt.Fprintln(out, "  publost [n]           raise n liveliness-lost reports")
	fmt.Fprintln(out, "  watch <ms>            arm a deadline watchdog with the given period")
	fmt.Fprintln(out, "  feed                  record a sample arrival, deferring the deadline")
	fmt.Fprintln(out, "  unwatch               disarm the watchdog")
	fmt.Fprintln(out, "  status                show pending flags for all kinds")
	fmt.Fprintln(out, "  take <kind>           consume a kind (deadline|liveliness|pubdeadline|publost)")
	fmt.Fprintln(out, "  wait [ms]             block until any kind is pending")
	fmt.Fprintln(out, "  callback on|off       switch the subscription to callback delivery")
	fmt.Fprintln(out, "  unread                show buffered event counts")
	fmt.Fprintln(out, "  exit                  quit")
}

// parseCount parses an optional positive repeat count argument.
func parseCount(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("count must be a positive integer")
	}
	return n, nil
}

func (m *Monitor) cmdDeadline(args []string) {
	n, err := parseCount(args)
	if err != nil {
		fmt.Fprintln(m.rl.Stdout(), err)
		return
	}
	for i := 0; i < n; i++ {
		m.subs.NotifyDeadlineMissed(m.cfg.Topic, status.RequestedDeadlineMissedStatus{
			TotalCount:       m.deadlineTotal.Add(1),
			TotalCountChange: 1,
		})
	}
	fmt.Fprintf(m.rl.Stdout(), "raised %d report(s), total now %d\n", n, m.deadlineTotal.Load())
}

func (m *Monitor) cmdWatch(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(m.rl.Stdout(), "usage: watch <period-ms>")
		return
	}
	ms, err := strconv.Atoi(args[0])
	if err != nil || ms < 1 {
		fmt.Fprintln(m.rl.Stdout(), "period must be a positive integer (milliseconds)")
		return
	}

	period := time.Duration(ms) * time.Millisecond
	if err := m.watchdog.Watch(m.cfg.Topic, period); err != nil {
		fmt.Fprintf(m.rl.Stdout(), "watch failed: %v\n", err)
		return
	}
	fmt.Fprintf(m.rl.Stdout(), "watchdog armed: expecting a feed every %v\n", period)
}

func (m *Monitor) cmdFeed() {
	if err := m.watchdog.RecordSample(m.cfg.Topic); err != nil {
		fmt.Fprintf(m.rl.Stdout(), "feed failed: %v (arm with watch first)\n", err)
		return
	}
	w := m.watchdog.GetWatch(m.cfg.Topic)
	fmt.Fprintf(m.rl.Stdout(), "sample recorded, next deadline in %v\n", w.RemainingTime())
}

func (m *Monitor) cmdUnwatch() {
	if err := m.watchdog.Cancel(m.cfg.Topic); err != nil {
		fmt.Fprintf(m.rl.Stdout(), "unwatch failed: %v\n", err)
		return
	}
	fmt.Fprintln(m.rl.Stdout(), "watchdog disarmed")
}

func (m *Monitor) cmdLiveliness(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(m.rl.Stdout(), "usage: live <alive> <notalive>")
		return
	}
	alive, err1 := strconv.Atoi(args[0])
	notAlive, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil || alive < 0 || notAlive < 0 {
		fmt.Fprintln(m.rl.Stdout(), "counts must be non-negative integers")
		return
	}

	st := status.LivelinessChangedStatus{
		AliveCount:          int32(alive),
		NotAliveCount:       int32(notAlive),
		AliveCountChange:    int32(alive) - m.alive,
		NotAliveCountChange: int32(notAlive) - m.notAlive,
	}
	m.alive, m.notAlive = int32(alive), int32(notAlive)
	m.subs.NotifyLivelinessChanged(m.cfg.Topic, st)
	fmt.Fprintf(m.rl.Stdout(), "reported alive=%d not_alive=%d (changes %+d/%+d)\n",
		st.AliveCount, st.NotAliveCount, st.AliveCountChange, st.NotAliveCountChange)
}

func (m *Monitor) cmdPubDeadline(args []string) {
	n, err := parseCount(args)
	if err != nil {
		fmt.Fprintln(m.rl.Stdout(), err)
		return
	}
	for i := 0; i < n; i++ {
		m.pubDeadlineTotal++
		m.pubs.NotifyDeadlineMissed(m.cfg.Topic, status.OfferedDeadlineMissedStatus{
			TotalCount:       m.pubDeadlineTotal,
			TotalCountChange: 1,
		})
	}
	fmt.Fprintf(m.rl.Stdout(), "raised %d report(s), total now %d\n", n, m.pubDeadlineTotal)
}

func (m *Monitor) cmdPubLost(args []string) {
	n, err := parseCount(args)
	if err != nil {
		fmt.Fprintln(m.rl.Stdout(), err)
		return
	}
	for i := 0; i < n; i++ {
		m.pubLostTotal++
		m.pubs.NotifyLivelinessLost(m.cfg.Topic, status.LivelinessLostStatus{
			TotalCount:       m.pubLostTotal,
			TotalCountChange: 1,
		})
	}
	fmt.Fprintf(m.rl.Stdout(), "raised %d report(s), total now %d\n", n, m.pubLostTotal)
}

func (m *Monitor) cmdStatus() {
	out := m.rl.Stdout()
	for _, name := range []string{"deadline", "liveliness", "pubdeadline", "publost"} {
		ev := m.events[name]
		fmt.Fprintf(out, "  %-12s %-26s pending=%v\n", name, ev.Kind(), ev.Ready())
	}
}

func (m *Monitor) cmdTake(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(m.rl.Stdout(), "usage: take <deadline|liveliness|pubdeadline|publost>")
		return
	}
	out := m.rl.Stdout()

	switch args[0] {
	case "deadline":
		var st status.RequestedDeadlineMissedStatus
		m.events[args[0]].Take(&st)
		fmt.Fprintf(out, "total_count=%d total_count_change=%d\n", st.TotalCount, st.TotalCountChange)
	case "liveliness":
		var st status.LivelinessChangedStatus
		m.events[args[0]].Take(&st)
		fmt.Fprintf(out, "alive=%d not_alive=%d alive_change=%+d not_alive_change=%+d\n",
			st.AliveCount, st.NotAliveCount, st.AliveCountChange, st.NotAliveCountChange)
	case "pubdeadline":
		var st status.OfferedDeadlineMissedStatus
		m.events[args[0]].Take(&st)
		fmt.Fprintf(out, "total_count=%d total_count_change=%d\n", st.TotalCount, st.TotalCountChange)
	case "publost":
		var st status.LivelinessLostStatus
		m.events[args[0]].Take(&st)
		fmt.Fprintf(out, "total_count=%d total_count_change=%d\n", st.TotalCount, st.TotalCountChange)
	default:
		fmt.Fprintf(out, "unknown kind %q\n", args[0])
	}
}

func (m *Monitor) cmdWait(args []string) {
	timeout := m.cfg.WaitTimeout
	if len(args) > 0 {
		ms, err := strconv.Atoi(args[0])
		if err != nil || ms < 0 {
			fmt.Fprintln(m.rl.Stdout(), "timeout must be a non-negative integer (milliseconds)")
			return
		}
		timeout = time.Duration(ms) * time.Millisecond
	}

	ready, err := m.ws.Wait(context.Background(), timeout)
	if errors.Is(err, waitset.ErrWaitTimeout) {
		fmt.Fprintf(m.rl.Stdout(), "no event within %v\n", timeout)
		return
	}
	if err != nil {
		fmt.Fprintf(m.rl.Stdout(), "wait failed: %v\n", err)
		return
	}
	for _, w := range ready {
		fmt.Fprintf(m.rl.Stdout(), "ready: %s\n", w.(*events.Event).Kind())
	}
}

func (m *Monitor) cmdCallback(args []string) {
	if len(args) != 1 || (args[0] != "on" && args[0] != "off") {
		fmt.Fprintln(m.rl.Stdout(), "usage: callback on|off")
		return
	}

	if args[0] == "off" {
		m.sub.Listener().SetDeliveryCallback(nil, nil)
		m.callbackOn = false
		fmt.Fprintln(m.rl.Stdout(), "callback cleared; events buffer again")
		return
	}

	out := m.rl.Stdout()
	m.sub.Listener().SetDeliveryCallback(m.sub.GUID.String(), func(userData any, count uint64) {
		fmt.Fprintf(out, "[callback] %v: %d event(s)\n", userData, count)
	})
	m.callbackOn = true
	fmt.Fprintln(out, "callback registered (any backlog was flushed above)")
}

func (m *Monitor) cmdUnread() {
	fmt.Fprintf(m.rl.Stdout(), "subscription unread=%d publication unread=%d\n",
		m.sub.Listener().UnreadCount(), m.pub.Listener().UnreadCount())
}
