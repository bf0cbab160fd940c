/*
Package tree implements a general purpose tree of mutable nodes.

Overview

Document trees, shadow trees and fragments of the host DOM are all built
on top of this type. In an object oriented language we would subclass the
tree node for every kind of tree in use, but in Go we resort to composition:
a DOM node embeds a generic tree node and sets the payload to point back to
itself (see package dom).

Children lists are protected by a read/write mutex, so inspecting a tree
from a debugging goroutine is safe. Structural operations keep sibling order;
removing a child closes the gap.

Walking a tree is synchronous and in document order. Earlier versions of this
package offered a concurrent pipeline of filters; custom element reactions
must run in tree order on a single thread, so this has been dropped.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/
package tree
