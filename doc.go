// Package socketlabs provides a Go client for the SocketLabs Injection API.
//
// A message is validated before it is sent, serialized into the Injection API
// request format and posted over HTTPS. Transient failures can be retried
// automatically with a randomized exponential backoff.
//
// Basic usage:
//
//	client, err := socketlabs.New(serverID, apiKey, socketlabs.WithRetries(2))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	msg := &socketlabs.BasicMessage{}
//	msg.Subject = "Sending a basic message"
//	msg.HTMLBody = "<html><body>This is the HTML body.</body></html>"
//	msg.PlainTextBody = "This is the plain text body."
//	msg.SetFrom("from@example.com")
//	msg.AddToEmailAddress("recipient@example.com")
//
//	resp, err := client.Send(ctx, msg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(resp.Result.Name(), resp.TransactionReceipt)
//
// Bulk messages carry one template and per-recipient merge data:
//
//	msg := &socketlabs.BulkMessage{}
//	msg.Subject = "Hello %%FirstName%%"
//	msg.PlainTextBody = "Your order %%OrderID%% has shipped."
//	msg.SetFrom("from@example.com")
//	msg.AddToRecipient("ann@example.com", "Ann").
//	    AddMergeData("FirstName", "Ann").
//	    AddMergeData("OrderID", "1001")
//
// Results and errors are kept apart. Validation failures and every response
// from the Injection API are reported through [SendResponse.Result]; an
// error means the send could not be completed at all. Errors can be checked
// with errors.Is and errors.As:
//
//	resp, err := client.Send(ctx, msg)
//	if errors.Is(err, socketlabs.ErrRetriesExhausted) {
//	    // every attempt failed with a 5xx status or a network error
//	}
package socketlabs
