package gli

// Enum values shared by desktop GL 4.1 core and WebGL2.
const (
	BYTE           Enum = 0x1400
	UNSIGNED_BYTE  Enum = 0x1401
	SHORT          Enum = 0x1402
	UNSIGNED_SHORT Enum = 0x1403
	INT            Enum = 0x1404
	FLOAT          Enum = 0x1406

	FLOAT_VEC2 Enum = 0x8B50
	FLOAT_VEC3 Enum = 0x8B51
	FLOAT_VEC4 Enum = 0x8B52
	FLOAT_MAT2 Enum = 0x8B5A
	FLOAT_MAT3 Enum = 0x8B5B
	FLOAT_MAT4 Enum = 0x8B5C
	SAMPLER_2D Enum = 0x8B5E

	VERTEX_SHADER   ShaderStage = 0x8B31
	FRAGMENT_SHADER ShaderStage = 0x8B30

	TRIANGLES Enum = 0x0004

	COLOR_BUFFER_BIT Enum = 0x4000
	DEPTH_BUFFER_BIT Enum = 0x0100

	TEXTURE_2D         Enum = 0x0DE1
	TEXTURE0           Enum = 0x84C0
	TEXTURE_MAG_FILTER Enum = 0x2800
	TEXTURE_MIN_FILTER Enum = 0x2801
	TEXTURE_WRAP_S     Enum = 0x2802
	TEXTURE_WRAP_T     Enum = 0x2803

	NEAREST                Enum = 0x2600
	LINEAR                 Enum = 0x2601
	NEAREST_MIPMAP_NEAREST Enum = 0x2700
	LINEAR_MIPMAP_LINEAR   Enum = 0x2703
	REPEAT                 Enum = 0x2901
	CLAMP_TO_EDGE          Enum = 0x812F
	MIRRORED_REPEAT        Enum = 0x8370

	RED_INTEGER Enum = 0x8D94
	RGB         Enum = 0x1907
	RGBA        Enum = 0x1908
	RGBA8       Enum = 0x8058
	R8UI        Enum = 0x8232
)
