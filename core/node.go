package core

import (
	"gigchain/core/events"
	"gigchain/core/state"
	"gigchain/native/escrow"
	"gigchain/native/milestone"
	"gigchain/native/reputation"
	"gigchain/storage"
)

// Node assembles the ledger access layer and the three native engines over a
// single database. The surrounding runtime resolves caller principals and
// submits operations one at a time; the node itself holds no locks.
type Node struct {
	state       *state.Manager
	escrowEng   *escrow.Engine
	milestones  *milestone.Engine
	reputations *reputation.Engine
}

// NewNode wires the engines against a shared state manager.
func NewNode(db storage.Database) *Node {
	mgr := state.NewManager(db)

	escrowEng := escrow.NewEngine()
	escrowEng.SetState(mgr)

	milestones := milestone.NewEngine()
	milestones.SetState(mgr)
	milestones.SetProjectSource(mgr)

	reputations := reputation.NewEngine(mgr)

	return &Node{
		state:       mgr,
		escrowEng:   escrowEng,
		milestones:  milestones,
		reputations: reputations,
	}
}

// SetEmitter fans the provided emitter out to every engine.
func (n *Node) SetEmitter(emitter events.Emitter) {
	n.escrowEng.SetEmitter(emitter)
	n.milestones.SetEmitter(emitter)
	n.reputations.SetEmitter(emitter)
}

// SetAdmin configures the admin principal on the reputation engine.
func (n *Node) SetAdmin(admin [20]byte) {
	n.reputations.SetAdmin(admin)
}

// State returns the ledger access layer.
func (n *Node) State() *state.Manager { return n.state }

// Escrow returns the project escrow engine.
func (n *Node) Escrow() *escrow.Engine { return n.escrowEng }

// Milestones returns the milestone tracking engine.
func (n *Node) Milestones() *milestone.Engine { return n.milestones }

// Reputation returns the skill verification engine.
func (n *Node) Reputation() *reputation.Engine { return n.reputations }
