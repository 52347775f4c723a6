// Package electionservice implements the election-state service inside the
// election context.
//
// The module owns candidate and voter registration, the one-voter-one-vote
// rule, election reset and read-only projections for view layers. Business
// rules live in application/domain layers; storage and presentation concerns
// sit behind ports and adapters.
package electionservice
