// Package email sends transactional messages.
//
// EmailSender has two implementations: a Postmark client for real delivery and
// DevSender, which writes every message to a directory for local inspection.
// Both validate SendEmailParams before doing any work.
//
//	sender, err := email.NewPostmarkClient(cfg)
//	if err != nil {
//		return err
//	}
//	err = sender.SendEmail(ctx, email.SendEmailParams{
//		SendTo:   "team@example.com",
//		Subject:  "Novo contato",
//		BodyText: "...",
//	})
package email
