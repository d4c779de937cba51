/*
 * === This file is part of the WSL Distro Launcher ===
 *
 * Copyright 2024-2026 the WSL Distro Launcher authors.
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <http://www.gnu.org/licenses/>.
 */

package sm

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// A minimal two-state machine exercising the dispatch core.
type tickEvent interface{ isTickEvent() }

type tick struct{}
type halt struct{}

func (tick) isTickEvent() {}
func (halt) isTickEvent() {}

type counting struct{ ticks int }

func (s *counting) OnEvent(event tickEvent) State[tickEvent] {
	switch event.(type) {
	case tick:
		return &counting{ticks: s.ticks + 1}
	case halt:
		return &halted{}
	}
	return nil
}

type halted struct{}

func (s *halted) OnEvent(event tickEvent) State[tickEvent] {
	return nil
}

var _ = Describe("state machine engine", func() {
	var machine *Machine[tickEvent]

	BeforeEach(func() {
		machine = New[tickEvent](&counting{})
	})

	When("the current state handles the event kind", func() {
		It("installs the handler's result as the new state", func() {
			Expect(machine.Apply(tick{})).To(BeTrue())
			Expect(machine.Current().(*counting).ticks).To(Equal(1))
			Expect(machine.Apply(tick{})).To(BeTrue())
			Expect(machine.Current().(*counting).ticks).To(Equal(2))
		})

		It("can move to a different state kind", func() {
			Expect(machine.Apply(halt{})).To(BeTrue())
			Expect(Is[*halted](machine)).To(BeTrue())
			Expect(Is[*counting](machine)).To(BeFalse())
		})
	})

	When("the current state defines no handler for the event kind", func() {
		It("rejects and leaves the state untouched", func() {
			Expect(machine.Apply(halt{})).To(BeTrue())
			before := machine.Current()
			Expect(machine.Apply(tick{})).To(BeFalse())
			Expect(machine.Apply(halt{})).To(BeFalse())
			Expect(machine.Current()).To(BeIdenticalTo(before))
		})
	})
})

func TestMachine(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Machine Test Suite")
}
