// Package pexels provides a client for the Pexels photo search API.
//
// A Client issues authenticated search requests one page at a time and keeps
// a page cursor, so the last search can be advanced with NextPage. Raw result
// records are mapped to Photo descriptors by NewPhoto, which insists on every
// field except the alt text.
//
//	client := pexels.NewClient(key, pexels.Options{}, log)
//	result, err := client.Search("cats", 10)
//	if err != nil {
//	    if errors.IsType(err, errors.ErrorTypeAuth) {
//	        // bad key
//	    }
//	}
//	_ = result.Each(func(p *pexels.Photo) bool {
//	    fmt.Println(p.Original, p.Extension)
//	    return true
//	})
//
// Image downloads are plain GETs against the CDN URL with a browser
// User-Agent and a Referer header; no API key is sent.
package pexels
