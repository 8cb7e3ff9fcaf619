// Package bss is a client for the Partage BSS domain API.
//
// A Client signs Auth requests with the preauth secret of each domain and
// caches the returned token for 270 seconds, a 30 second margin before
// the server forgets it. Other API methods are called with the cached
// token:
//
//	cfg := bss.DefaultConfig()
//	cfg.Credentials.Static = []bss.StaticCredential{{Domain: "example.org", Secret: secret}}
//
//	c, err := bss.New(cfg)
//	if err != nil {
//		return err
//	}
//	defer c.Close()
//
//	resp, err := c.Call(ctx, "example.org", "GetAccount", url.Values{"name": {"jdoe@example.org"}})
//	if errors.Is(err, bss.ErrRemoteCall) {
//		log.Println(bss.ServerMessage(err))
//	}
package bss
