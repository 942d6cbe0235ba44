package progress

import (
	"fmt"
	"io"
	"sync"
	"time"

	"go.trai.ch/pax/internal/core/domain"
	"go.trai.ch/pax/internal/core/ports"
	"go.trai.ch/pax/internal/ui/style"
)

const downloadText = "Downloading binary artifacts"

// queueSize bounds the number of pending events before callers block.
const queueSize = 256

type downloadProgress struct {
	downloaded int64
	total      int64
}

// Delegate implements ports.WorkspaceDelegate.
// Every event is handled on a single goroutine, which owns the download map and writes
// to the output; callbacks only enqueue work.
type Delegate struct {
	out         *SyncWriter
	animation   ports.ProgressAnimation
	diagnostics *domain.Diagnostics

	mu     sync.RWMutex
	closed bool
	queue  chan func()
	done   chan struct{}

	downloads map[string]downloadProgress
}

// NewDelegate starts a delegate writing to out.
func NewDelegate(out io.Writer, animation ports.ProgressAnimation, diagnostics *domain.Diagnostics) *Delegate {
	d := &Delegate{
		out:         NewSyncWriter(out),
		animation:   animation,
		diagnostics: diagnostics,
		queue:       make(chan func(), queueSize),
		done:        make(chan struct{}),
		downloads:   make(map[string]downloadProgress),
	}
	go d.loop()
	return d
}

func (d *Delegate) loop() {
	defer close(d.done)
	for work := range d.queue {
		work()
	}
}

// Close processes the pending events and stops the delegate. Events reported after Close
// are dropped.
func (d *Delegate) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()
	<-d.done
}

func (d *Delegate) enqueue(work func()) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return false
	}
	d.queue <- work
	return true
}

// enqueueAndWait runs work on the delegate goroutine and returns once it ran.
func (d *Delegate) enqueueAndWait(work func()) {
	ran := make(chan struct{})
	if d.enqueue(func() {
		defer close(ran)
		work()
	}) {
		<-ran
	}
}

func (d *Delegate) print(lines ...string) {
	d.enqueue(func() {
		_ = d.out.WriteLines(lines...)
	})
}

func seconds(dur time.Duration) string {
	return fmt.Sprintf("(%.2fs)", dur.Seconds())
}

// WillFetch reports that a repository is about to be fetched.
func (d *Delegate) WillFetch(url string) {
	d.print("Fetching " + url)
}

// FetchingWillBegin reports that the transfer of a repository started.
func (d *Delegate) FetchingWillBegin(url string, fromCache bool) {
	if fromCache {
		d.print("Fetching " + url + " from cache")
	}
}

// DidFetch reports the end of a fetch.
func (d *Delegate) DidFetch(url string, fromCache bool, err error, duration time.Duration) {
	if err != nil {
		d.print(style.Failure.Render(style.Cross) + " Failed fetching " + url + ": " + err.Error())
		return
	}
	suffix := ""
	if fromCache {
		suffix = " from cache"
	}
	d.print("Fetched " + url + suffix + " " + seconds(duration))
}

// WillClone reports that a working copy is about to be cloned.
func (d *Delegate) WillClone(url string) {
	d.print("Cloning " + url)
}

// DidClone reports a completed clone.
func (d *Delegate) DidClone(url string, duration time.Duration) {
	d.print("Cloned " + url + " " + seconds(duration))
}

// WillCheckout reports that a revision is about to be checked out.
func (d *Delegate) WillCheckout(identity, revision string) {
	d.print("Checking out " + revision + " of " + identity)
}

// DidCheckout reports a completed checkout.
func (d *Delegate) DidCheckout(identity, revision string, duration time.Duration) {
	d.print("Checked out " + revision + " of " + identity + " " + seconds(duration))
}

// WillUpdate reports that a repository is about to be updated.
func (d *Delegate) WillUpdate(url string) {
	d.print("Updating " + url)
}

// DidUpdate reports a completed update.
func (d *Delegate) DidUpdate(url string, duration time.Duration) {
	d.print("Updated " + url + " " + seconds(duration))
}

// DependenciesUpToDate reports that no dependency needed an update.
func (d *Delegate) DependenciesUpToDate() {
	d.print("Everything is already up-to-date")
}

// WillResolveDependencies reports why the resolver runs. The line is written before
// this method returns.
func (d *Delegate) WillResolveDependencies(reason string) {
	d.enqueueAndWait(func() {
		_ = d.out.WriteLines("Running resolver because " + reason)
	})
}

// DidCreateWorkingCopy reports a new working copy.
func (d *Delegate) DidCreateWorkingCopy(identity, path string) {
	d.print("Creating working copy for " + identity + " at " + path)
}

// RemovedDependency reports a dependency that is no longer required.
func (d *Delegate) RemovedDependency(identity string) {
	d.print("Removing " + identity)
}

// WillComputeVersion reports that a dependency version is about to be computed.
func (d *Delegate) WillComputeVersion(identity, location string) {
	d.print("Computing version for " + identity + " (" + location + ")")
}

// DidComputeVersion reports a computed dependency version.
func (d *Delegate) DidComputeVersion(identity, location, version string, duration time.Duration) {
	d.print("Computed " + identity + " (" + location + ") at " + version + " " + seconds(duration))
}

// DownloadingBinaryArtifact reports the progress of one artifact download.
// Downloads without a known total are not shown until a total is reported.
func (d *Delegate) DownloadingBinaryArtifact(url string, downloaded, total int64) {
	d.enqueue(func() {
		if total > 0 {
			d.downloads[url] = downloadProgress{downloaded: downloaded, total: total}
		} else if _, ok := d.downloads[url]; !ok {
			return
		}

		step, all := d.aggregateKiB()
		d.animation.Update(step, all, downloadText)
	})
}

// DidDownloadBinaryArtifacts finishes the download indicator.
func (d *Delegate) DidDownloadBinaryArtifacts() {
	d.enqueue(func() {
		if d.diagnostics != nil && d.diagnostics.HasErrors() {
			d.animation.Clear()
		} else {
			d.animation.Complete(true)
		}
		clear(d.downloads)
	})
}

// aggregateKiB sums all known downloads in kibibytes.
func (d *Delegate) aggregateKiB() (downloaded, total int64) {
	for _, p := range d.downloads {
		downloaded += p.downloaded
		total += p.total
	}
	return downloaded / 1024, total / 1024
}
