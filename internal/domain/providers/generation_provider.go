package providers

import "context"

// ReportGenerator fills a report template from a transcript. The template
// is passed verbatim; placeholder resolution is delegated entirely to the
// provider's inference. Implementations must request low-variance
// generation. There is no fallback at this stage: a failure is terminal
// for the case run.
type ReportGenerator interface {
	GenerateReport(ctx context.Context, transcript, template string) (string, error)
}
