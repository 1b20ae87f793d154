package parallel

// bandsPerWorker is how many bands each worker gets on average when the
// band height is chosen automatically. More bands than workers lets work
// stealing even out slow regions.
const bandsPerWorker = 4

// Band is the half-open row range [Y0, Y1).
type Band struct {
	Y0, Y1 int
}

// Rows returns the number of rows in the band.
func (b Band) Rows() int {
	return b.Y1 - b.Y0
}

// AutoBandHeight picks a band height that gives each worker about
// bandsPerWorker bands. The result is at least 1.
func AutoBandHeight(height, workers int) int {
	if workers < 1 {
		workers = 1
	}
	n := workers * bandsPerWorker
	return max((height+n-1)/n, 1)
}

// Bands splits [0, height) into consecutive bands of bandHeight rows.
// The last band may be shorter. A bandHeight below 1 is treated as 1.
func Bands(height, bandHeight int) []Band {
	if height <= 0 {
		return nil
	}
	if bandHeight < 1 {
		bandHeight = 1
	}
	bands := make([]Band, 0, (height+bandHeight-1)/bandHeight)
	for y := 0; y < height; y += bandHeight {
		bands = append(bands, Band{Y0: y, Y1: min(y+bandHeight, height)})
	}
	return bands
}

// ForEachBand runs fn once per band on the pool and waits for completion.
func (p *WorkerPool) ForEachBand(bands []Band, fn func(Band)) {
	jobs := make([]func(), len(bands))
	for i, b := range bands {
		jobs[i] = func() { fn(b) }
	}
	p.ExecuteAll(jobs)
}
