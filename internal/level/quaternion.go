package level

import (
	"github.com/chewxy/math32"

	"github.com/morganbevy/editor/internal/scene"
)

// EulerToQuaternion converts euler angles (radians, applied Z·Y·X) to a
// quaternion in [x, y, z, w] component order. The zero rotation maps to the
// identity quaternion [0, 0, 0, 1].
func EulerToQuaternion(e scene.Vec3) [4]float32 {
	cx, sx := math32.Cos(e[0]/2), math32.Sin(e[0]/2)
	cy, sy := math32.Cos(e[1]/2), math32.Sin(e[1]/2)
	cz, sz := math32.Cos(e[2]/2), math32.Sin(e[2]/2)

	return [4]float32{
		sx*cy*cz - cx*sy*sz,
		cx*sy*cz + sx*cy*sz,
		cx*cy*sz - sx*sy*cz,
		cx*cy*cz + sx*sy*sz,
	}
}
