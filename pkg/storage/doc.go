// Package storage manages the per-query destination folder.
//
// Every image is first written to a temporary file inside the folder and
// only renamed onto its final name once the transfer has completed, so a
// failed download never leaves a partial file behind:
//
//	manager, err := storage.NewManager(".", "mountain lake")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	f, err := manager.Create("1.jpeg")
//	if err != nil {
//	    return err
//	}
//	if _, err := io.Copy(f, body); err != nil {
//	    f.Abort()
//	    return err
//	}
//	path, err := f.Commit()
package storage
