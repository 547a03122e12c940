// Package pipeline runs one query end to end: search, download, archive.
//
// The run is strictly sequential. A single search page bounds how many
// images can be fetched; per-image failures are skipped, and a failure to
// build the archive leaves the downloaded images in place.
//
//	p := pipeline.New(cfg, apiKey, logger.GetLogger())
//	report, err := p.Run("mountain lake", 10)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(report.ArchivePath)
package pipeline
