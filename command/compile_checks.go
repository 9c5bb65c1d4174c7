package command

import gocmd "github.com/goliatone/go-command"

var (
	_ gocmd.Commander[RetrieveAccountMessage]       = (*RetrieveAccountCommand)(nil)
	_ gocmd.Commander[SaveAccountMessage]           = (*SaveAccountCommand)(nil)
	_ gocmd.Commander[DeauthorizeAccountMessage]    = (*DeauthorizeAccountCommand)(nil)
	_ gocmd.Commander[CreateExternalAccountMessage] = (*CreateExternalAccountCommand)(nil)
	_ gocmd.Commander[ListExternalAccountsMessage]  = (*ListExternalAccountsCommand)(nil)
)
